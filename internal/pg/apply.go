package pg

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pingcap/errors"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ApplyDDL выполняет map[table]sql. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *bun.DB, ddl map[string]string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	// стабильно: по имени таблицы
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		// сырой *sql.DB: форматтер bun не должен трогать '?' внутри DDL
		if _, err := db.DB.ExecContext(ctx, sqlText); err != nil {
			// игнорируем duplicate_object (42710)
			if pgErr, ok := errors.Cause(err).(*pgconn.PgError); ok && pgErr.Code == "42710" {
				log.Info("DDL skipped (already exists)",
					zap.String("table", k), zap.String("message", strings.TrimSpace(pgErr.Message)))
				continue
			}
			e := strings.ToLower(err.Error())
			if strings.Contains(e, "already exists") || strings.Contains(e, "duplicate") {
				log.Info("DDL skipped (already exists)", zap.String("table", k), zap.Error(err))
				continue
			}
			return errors.Annotatef(err, "DDL apply failed for %s", k)
		}
		log.Debug("DDL applied", zap.String("table", k))
	}
	return nil
}
