package repository

import (
	"context"
	"time"
)

// Record is one persisted canonical extraction.
type Record struct {
	ID         int64             `json:"id"`
	DocType    string            `json:"doc_type"`
	Fields     map[string]string `json:"fields"`
	Provenance string            `json:"provenance"`
	CreatedAt  time.Time         `json:"created_at"`
}

// RecordRepository is the storage collaborator. It receives finalized
// records by value and is agnostic to the extraction engine; a Save failure
// never invalidates the extraction that produced the record.
type RecordRepository interface {
	Save(ctx context.Context, docType string, fields map[string]string, provenance string) (int64, error)
	List(ctx context.Context, docType string) ([]Record, error)
	Delete(ctx context.Context, docType string, id int64) (bool, error)
	Ping(ctx context.Context) error
	Close()
}
