package overlay

import (
	"context"

	"go.uber.org/zap"
)

// Selection — параметры базового запроса (как у SELECT: поля, таблица, where, group, order, limit).
type Selection struct {
	Fields  string
	Table   string
	Where   string
	GroupBy string
	OrderBy string
	Limit   int
	Offset  int
}

// Service собирает записи таблицы с наложенными переводами.
type Service struct {
	exec     Executor
	registry Registry
	rules    VisibilityRules
	log      *zap.Logger
}

// NewService; rules == nil — правила видимости строятся по реестру (EnableFields).
func NewService(exec Executor, registry Registry, rules VisibilityRules, log *zap.Logger) *Service {
	if rules == nil {
		rules = NewEnableFields(registry, nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{exec: exec, registry: registry, rules: rules, log: log}
}

// GetAllRecordsForTable выполняет базовый запрос и накладывает переводы для rc.Language.
// Если наложение невозможно, возвращаются записи базового запроса как есть.
// Ошибки хранилища возвращаются без изменений.
func (s *Service) GetAllRecordsForTable(ctx context.Context, sel Selection, rc Context) ([]*Record, error) {
	where := sel.Where
	for _, cond := range []string{
		s.LanguageCondition(sel.Table, rc),
		s.EnableFieldsCondition(sel.Table, rc, false, nil),
	} {
		if cond == "" {
			continue
		}
		if where != "" {
			where += " AND "
		}
		where += "(" + cond + ")"
	}

	fields := sel.Fields
	doOverlays := false
	if rc.Language > LanguageDefault {
		augmented, err := s.SelectOverlayFields(ctx, sel.Table, fields)
		switch {
		case err == nil:
			fields = augmented
			doOverlays = true
		case IsSkip(err):
			s.log.Debug("overlay skipped",
				zap.String("table", sel.Table), zap.Int("language", rc.Language), zap.Error(err))
		default:
			return nil, err
		}
	}

	records, err := s.exec.Select(ctx, Query{
		Fields:  fields,
		Table:   sel.Table,
		Where:   where,
		GroupBy: sel.GroupBy,
		OrderBy: sel.OrderBy,
		Limit:   sel.Limit,
		Offset:  sel.Offset,
	})
	if err != nil {
		return nil, err
	}

	if doOverlays {
		return s.OverlayRecordSet(ctx, sel.Table, records, rc)
	}
	return records, nil
}
