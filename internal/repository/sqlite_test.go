package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashwanthu-lab/docfields/internal/common"
)

func openTestRepo(t *testing.T) RecordRepository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "records.db")
	repo, err := Open(context.Background(), common.DatabaseConfig{DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func TestSQLiteSaveAndList(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	fields := map[string]string{
		"bank_name": "STATE BANK OF INDIA",
		"ifsc_code": "SBIN0001234",
		"account":   "12345678901",
	}
	id, err := repo.Save(ctx, "bank", fields, "llm")
	require.NoError(t, err)
	assert.Positive(t, id)

	recs, err := repo.List(ctx, "bank")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
	assert.Equal(t, "bank", recs[0].DocType)
	assert.Equal(t, fields, recs[0].Fields)
	assert.Equal(t, "llm", recs[0].Provenance)
	assert.False(t, recs[0].CreatedAt.IsZero())
}

func TestSQLiteListFiltersByDocType(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, "bank", map[string]string{"bank_name": "HDFC BANK"}, "llm")
	require.NoError(t, err)
	_, err = repo.Save(ctx, "identity", map[string]string{"name": "RAMESH KUMAR"}, "local-fallback")
	require.NoError(t, err)

	recs, err := repo.List(ctx, "identity")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "RAMESH KUMAR", recs[0].Fields["name"])
}

func TestSQLiteListNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, "bank", map[string]string{"bank_name": "FIRST"}, "llm")
	require.NoError(t, err)
	second, err := repo.Save(ctx, "bank", map[string]string{"bank_name": "SECOND"}, "llm")
	require.NoError(t, err)

	recs, err := repo.List(ctx, "bank")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second, recs[0].ID)
	assert.Equal(t, first, recs[1].ID)
}

func TestSQLiteDelete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, "bank", map[string]string{"bank_name": "HDFC BANK"}, "llm")
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "bank", id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "bank", id)
	require.NoError(t, err)
	assert.False(t, deleted)

	// doc_type mismatch must not delete
	id, err = repo.Save(ctx, "identity", map[string]string{"name": "RAMESH"}, "llm")
	require.NoError(t, err)
	deleted, err = repo.Delete(ctx, "bank", id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSQLitePing(t *testing.T) {
	repo := openTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
