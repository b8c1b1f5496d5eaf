package repository

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yashwanthu-lab/docfields/internal/common"
)

// Open selects a backend from the DSN: postgres:// / postgresql:// URLs get
// the pgx pool, anything else is treated as a SQLite database path.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (RecordRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(ctx, cfg.DSN, logger)
}
