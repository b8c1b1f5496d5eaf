package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yashwanthu-lab/docfields/internal/common"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS extraction_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	doc_type TEXT NOT NULL,
	fields TEXT NOT NULL,
	provenance TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

type sqliteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (RecordRepository, error) {
	if path == "" {
		path = "docfields.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("opened sqlite database", "path", path)
	return &sqliteRepository{db: db, logger: logger}, nil
}

func (r *sqliteRepository) Save(ctx context.Context, docType string, fields map[string]string, provenance string) (int64, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("marshal fields: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_records (doc_type, fields, provenance, created_at) VALUES (?, ?, ?, ?)`,
		docType, string(payload), provenance, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("record save failed", "doc_type", docType, "error", err)
		return 0, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return res.LastInsertId()
}

func (r *sqliteRepository) List(ctx context.Context, docType string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, doc_type, fields, provenance, created_at
		 FROM extraction_records WHERE doc_type = ? ORDER BY created_at DESC, id DESC`,
		docType,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var payload, created string
		if err := rows.Scan(&rec.ID, &rec.DocType, &payload, &rec.Provenance, &created); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sqliteRepository) Delete(ctx context.Context, docType string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM extraction_records WHERE doc_type = ? AND id = ?`, docType, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteRepository) Close() {
	if err := r.db.Close(); err != nil {
		r.logger.Warn("sqlite close error", "error", err)
	}
}
