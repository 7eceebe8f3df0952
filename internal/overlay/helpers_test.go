package overlay

import (
	"context"
	"time"

	"overlays/internal/dsl"
)

// fakeExecutor запоминает запросы и отдаёт заранее заданные строки по таблице
type fakeExecutor struct {
	rows    map[string][]*Record
	columns map[string]map[string]struct{}
	queries []Query
	err     error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		rows:    map[string][]*Record{},
		columns: map[string]map[string]struct{}{},
	}
}

func (f *fakeExecutor) Select(_ context.Context, q Query) ([]*Record, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[q.Table], nil
}

func (f *fakeExecutor) DescribeColumns(_ context.Context, table string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns[table], nil
}

func columnsOf(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func testCatalog() dsl.Catalog {
	return dsl.Catalog{
		"tt_content": {
			Name: "tt_content",
			Ctrl: dsl.Ctrl{LanguageField: "sys_language_uid", TransOrigPointerField: "l18n_parent", DeleteField: "deleted"},
			Enable: dsl.EnableColumns{
				Disabled:  "hidden",
				StartTime: "starttime",
				EndTime:   "endtime",
				FeGroup:   "fe_group",
			},
			Fields: []dsl.Field{
				{Name: "header", Type: "string", L10nMode: dsl.L10nMergeIfNotBlank},
				{Name: "image", Type: "int", L10nMode: dsl.L10nExclude},
				{Name: "title", Type: "string"},
			},
		},
		"pages": {
			Name:   "pages",
			Ctrl:   dsl.Ctrl{TransForeignTable: "pages_language_overlay"},
			Enable: dsl.EnableColumns{Disabled: "hidden"},
		},
		"pages_language_overlay": {
			Name: "pages_language_overlay",
			Ctrl: dsl.Ctrl{LanguageField: "sys_language_uid", TransOrigPointerField: "pid", TransOrigPointerTable: "pages"},
		},
		"tx_news": {
			Name: "tx_news",
			Ctrl: dsl.Ctrl{LanguageField: "sys_language_uid"},
		},
		"plain": {Name: "plain"},
	}
}

var fixedNow = time.Unix(1700000000, 0)

func newTestService(exec Executor) *Service {
	cat := testCatalog()
	return NewService(exec, cat, NewEnableFields(cat, func() time.Time { return fixedNow }), nil)
}
