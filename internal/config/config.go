package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"overlays/internal/overlay"
)

// DefaultConfigPath — JSON-конфиг рядом с бинарником (необязателен)
const DefaultConfigPath = "config.json"

// EnvPrefix — префикс переменных окружения (OVERLAYS_PORT, OVERLAYS_DB_URL, ...)
const EnvPrefix = "OVERLAYS_"

type Config struct {
	Port          string `json:"port" env:"PORT"`
	DSLDir        string `json:"dslDir" env:"DSL_DIR"`
	LanguagesFile string `json:"languagesFile" env:"LANGUAGES_FILE"`
	DBURL         string `json:"dbUrl" env:"DB_URL"` // postgres://... или sqlite (file:..., :memory:); пусто — sqlite в памяти
	AutoMigrate   bool   `json:"autoMigrate" env:"AUTO_MIGRATE"`
	LogLevel      string `json:"logLevel" env:"LOG_LEVEL"`

	// режим наложения, если запрос не передал mode
	DefaultOverlayMode string `json:"defaultOverlayMode" env:"DEFAULT_OVERLAY_MODE"`
}

func def() Config {
	return Config{
		Port:          "8080",
		DSLDir:        "dsl",
		LanguagesFile: "reference/languages.yaml",
		DBURL:         "",
		AutoMigrate:   false,
		LogLevel:      "info",
	}
}

func loadJSON(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, c)
}

// Load собирает конфиг: значения по умолчанию -> JSON -> ENV -> флаги.
// args — аргументы командной строки без имени программы.
func Load(args []string) (Config, error) {
	return loadWithPath(DefaultConfigPath, args)
}

func loadWithPath(jsonPath string, args []string) (Config, error) {
	cfg := def()

	// JSON (если файл существует)
	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if err := loadJSON(jsonPath, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", jsonPath, err)
		}
	}

	// ENV overrides: незаданные переменные не трогают поле
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	// Flags overrides
	fs := flag.NewFlagSet("overlays", flag.ContinueOnError)
	configPath := fs.String("config", jsonPath, "Path to config JSON")
	port := fs.String("port", cfg.Port, "HTTP port")
	dsl := fs.String("dsl", cfg.DSLDir, "Path to DSL directory")
	langs := fs.String("languages", cfg.LanguagesFile, "Path to languages YAML")
	db := fs.String("db", cfg.DBURL, "Database URL (empty = in-memory sqlite)")
	auto := fs.String("auto-migrate", strconv.FormatBool(cfg.AutoMigrate), "Create tables from DSL (true/false)")
	level := fs.String("log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")
	mode := fs.String("overlay-mode", cfg.DefaultOverlayMode, "Default overlay mode (\"\" or hideNonTranslated)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// Если через флаг передали другой конфиг — перечитаем
	if *configPath != jsonPath {
		if _, err := os.Stat(*configPath); err != nil {
			return cfg, fmt.Errorf("config %s: %w", *configPath, err)
		}
		return loadWithPath(*configPath, args)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DSLDir = strings.TrimSpace(*dsl)
	cfg.LanguagesFile = strings.TrimSpace(*langs)
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(*level))
	cfg.DefaultOverlayMode = strings.TrimSpace(*mode)

	a, err := parseBool(*auto)
	if err != nil {
		return cfg, fmt.Errorf("-auto-migrate: %w", err)
	}
	cfg.AutoMigrate = a

	return cfg, cfg.Validate()
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool %q", s)
}

// Validate проверяет значения, которые нельзя проверить типом поля.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q: %w", c.Port, err)
	}
	if c.DefaultOverlayMode != "" && overlay.ParseOverlayMode(c.DefaultOverlayMode) == overlay.ModeNone {
		return fmt.Errorf("unknown overlay mode %q", c.DefaultOverlayMode)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// InMemory — БД не задана, работаем на sqlite в памяти (схема создаётся всегда).
func (c Config) InMemory() bool { return c.DBURL == "" }

// Addr — адрес для http.Server
func (c Config) Addr() string { return ":" + c.Port }

// OverlayMode — режим наложения по умолчанию
func (c Config) OverlayMode() overlay.OverlayMode {
	return overlay.ParseOverlayMode(c.DefaultOverlayMode)
}
