package overlay

import (
	"context"

	"overlays/internal/dsl"
)

// Query — один SELECT к хранилищу. Where/GroupBy/OrderBy — готовые SQL-фрагменты.
type Query struct {
	Fields  string
	Table   string
	Where   string
	GroupBy string
	OrderBy string
	Limit   int // 0 — без ограничения
	Offset  int
}

// Executor выполняет запросы к хранилищу записей.
// Порядок строк сохраняется, если задан OrderBy.
type Executor interface {
	Select(ctx context.Context, q Query) ([]*Record, error)
	DescribeColumns(ctx context.Context, table string) (map[string]struct{}, error)
}

// Registry отдаёт локализационное описание таблицы.
type Registry interface {
	Describe(table string) (*dsl.Table, bool)
}

// IgnoreSet — enable-правила, которые надо пропустить: disabled, starttime, endtime, fe_group
type IgnoreSet map[string]bool

// VisibilityRules строит условие видимости записей таблицы.
// Возвращаемый фрагмент начинается с " AND " (или пустой).
type VisibilityRules interface {
	EnableFieldsClause(table string, showHidden bool, ignore IgnoreSet, groups []int) string
}
