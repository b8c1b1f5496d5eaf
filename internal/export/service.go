package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yashwanthu-lab/docfields/internal/repository"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// Service produces XLSX bytes from stored extraction records.
type Service struct {
	repo   repository.RecordRepository
	logger *slog.Logger
}

func NewService(repo repository.RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// RecordsXLSX returns a workbook with one row per stored record of the given
// schema, columns in schema field order plus provenance and creation time.
func (s *Service) RecordsXLSX(ctx context.Context, sc *schema.Schema) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.List(ctx, sc.Name)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		f.SetActiveSheet(idx)
	}
	_ = f.DeleteSheet("Sheet1")

	headers := append(sc.FieldNames(), "provenance", "created_at")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, rec := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		for i, name := range sc.FieldNames() {
			write(i+1, rec.Fields[name])
		}
		write(len(headers)-1, rec.Provenance)
		if !rec.CreatedAt.IsZero() {
			write(len(headers), rec.CreatedAt.Format(time.RFC3339))
		}
	}

	if end, err := excelize.ColumnNumberToName(len(headers)); err == nil {
		_ = f.SetColWidth(sheet, "A", end, 24)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"doc_type", sc.Name,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
