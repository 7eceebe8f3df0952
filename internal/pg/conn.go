package pg

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "github.com/mattn/go-sqlite3"    // driver: sqlite3
	"github.com/pingcap/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open: postgres://... / postgresql://... — Postgres через pgx,
// sqlite:<path> или file:... — SQLite (для разработки и тестов).
func Open(url string) (*bun.DB, error) {
	driver, dsn := "pgx", url
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		driver, dsn = "sqlite3", strings.TrimPrefix(url, "sqlite:")
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		driver = "sqlite3"
	}

	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var db *bun.DB
	if driver == "sqlite3" {
		// in-memory база живёт, пока жив единственный коннект
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	} else {
		sqldb.SetConnMaxLifetime(30 * time.Minute)
		sqldb.SetMaxOpenConns(10)
		sqldb.SetMaxIdleConns(5)
		db = bun.NewDB(sqldb, pgdialect.New())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Trace(err)
	}
	return db, nil
}
