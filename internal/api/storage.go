package api

import (
	"sync"

	"go.uber.org/zap"

	"overlays/internal/dsl"
	"overlays/internal/overlay"
	"overlays/internal/reference"
)

// Options — пути для перезагрузки и значения по умолчанию для запросов
type Options struct {
	DSLDir        string
	LanguagesFile string
	DefaultMode   overlay.OverlayMode
}

// Storage держит текущий реестр таблиц и справочник языков.
// Реестр заменяется целиком (admin reload), запросы работают со снимком.
type Storage struct {
	mu        sync.RWMutex
	Catalog   dsl.Catalog
	Languages *reference.Languages

	exec overlay.Executor
	log  *zap.Logger
	opts Options
}

// NewStorage: langs == nil — справочник только с языком по умолчанию
func NewStorage(catalog dsl.Catalog, langs *reference.Languages, exec overlay.Executor, log *zap.Logger, opts Options) *Storage {
	if langs == nil {
		langs = reference.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DSLDir == "" {
		opts.DSLDir = "dsl"
	}
	return &Storage{
		Catalog:   catalog,
		Languages: langs,
		exec:      exec,
		log:       log,
		opts:      opts,
	}
}

func (s *Storage) snapshot() (dsl.Catalog, *reference.Languages) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Catalog, s.Languages
}

// Service — сервис наложения поверх текущего снимка реестра
func (s *Storage) Service() *overlay.Service {
	cat, _ := s.snapshot()
	return overlay.NewService(s.exec, cat, nil, s.log)
}

func (s *Storage) swap(catalog dsl.Catalog, langs *reference.Languages) {
	s.mu.Lock()
	s.Catalog = catalog
	s.Languages = langs
	s.mu.Unlock()
}
