package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yashwanthu-lab/docfields/internal/common"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS extraction_records (
	id BIGSERIAL PRIMARY KEY,
	doc_type TEXT NOT NULL,
	fields JSONB NOT NULL,
	provenance TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (RecordRepository, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "docfields"

	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 3 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("connected to postgres")
	return &postgresRepository{pool: pool, logger: logger}, nil
}

func (r *postgresRepository) Save(ctx context.Context, docType string, fields map[string]string, provenance string) (int64, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("marshal fields: %w", err)
	}
	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO extraction_records (doc_type, fields, provenance) VALUES ($1, $2, $3) RETURNING id`,
		docType, payload, provenance,
	).Scan(&id)
	if err != nil {
		r.logger.Error("record save failed", "doc_type", docType, "error", err)
		return 0, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return id, nil
}

func (r *postgresRepository) List(ctx context.Context, docType string) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doc_type, fields, provenance, created_at
		 FROM extraction_records WHERE doc_type = $1 ORDER BY created_at DESC`,
		docType,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.DocType, &payload, &rec.Provenance, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
		}
		if err := json.Unmarshal(payload, &rec.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, docType string, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM extraction_records WHERE doc_type = $1 AND id = $2`, docType, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.Ping(ctx)
}

func (r *postgresRepository) Close() {
	r.pool.Close()
}
