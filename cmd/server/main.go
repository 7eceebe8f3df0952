package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun/dialect"
	"go.uber.org/zap"

	"overlays/internal/api"
	"overlays/internal/config"
	"overlays/internal/dsl"
	"overlays/internal/logging"
	"overlays/internal/pg"
	"overlays/internal/reference"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Реестр таблиц из DSL
	catalog, err := dsl.LoadCatalog(cfg.DSLDir)
	if err != nil {
		return fmt.Errorf("loading DSL: %w", err)
	}
	if issues := catalog.Lint(); len(issues) > 0 {
		for _, it := range issues {
			log.Error("registry issue",
				zap.String("table", it.Table), zap.String("field", it.Field),
				zap.String("code", it.Code), zap.String("message", it.Message))
		}
		return fmt.Errorf("registry has %d blocking issues", len(issues))
	}
	log.Info("registry loaded", zap.Int("tables", len(catalog)))

	// 2. Справочник языков
	langs, err := reference.LoadLanguages(cfg.LanguagesFile)
	if err != nil {
		return fmt.Errorf("loading languages: %w", err)
	}
	log.Info("languages loaded", zap.Int("languages", len(langs.Items)))

	// 3. БД: без URL — sqlite в памяти, схема создаётся всегда
	dbURL, d, migrate := cfg.DBURL, dialect.PG, cfg.AutoMigrate
	if cfg.InMemory() {
		dbURL, d, migrate = "file:overlays?mode=memory&cache=shared", dialect.SQLite, true
	} else if !isPostgres(dbURL) {
		d = dialect.SQLite
	}
	db, err := pg.Open(dbURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrate {
		ddl, err := pg.GenerateDDL(catalog, d)
		if err != nil {
			return fmt.Errorf("generating DDL: %w", err)
		}
		if err := pg.ApplyDDL(ctx, db, ddl, log); err != nil {
			return err
		}
		log.Info("schema applied", zap.Int("tables", len(ddl)))
	}

	// 4. REST API
	storage := api.NewStorage(catalog, langs, pg.NewExecutor(db, log), log, api.Options{
		DSLDir:        cfg.DSLDir,
		LanguagesFile: cfg.LanguagesFile,
		DefaultMode:   cfg.OverlayMode(),
	})
	return api.RunServer(ctx, cfg.Addr(), storage)
}

func isPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
