package pg

import (
	"context"
	"database/sql"

	"github.com/pingcap/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"go.uber.org/zap"

	"overlays/internal/overlay"
)

// Executor выполняет SELECT-запросы ядра оверлеев через bun.
// Фрагменты запроса подставляются как есть (bun.Safe): они собираются из имён реестра
// и целых чисел, пользовательские значения экранируются до передачи сюда.
type Executor struct {
	db  *bun.DB
	log *zap.Logger
}

func NewExecutor(db *bun.DB, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{db: db, log: log}
}

// Select возвращает строки в порядке колонок результата.
func (e *Executor) Select(ctx context.Context, q overlay.Query) ([]*overlay.Record, error) {
	fields := q.Fields
	if fields == "" {
		fields = "*"
	}
	sq := e.db.NewSelect().
		ColumnExpr("?", bun.Safe(fields)).
		TableExpr("?", bun.Safe(q.Table))
	if q.Where != "" {
		sq = sq.Where("?", bun.Safe(q.Where))
	}
	if q.GroupBy != "" {
		sq = sq.GroupExpr("?", bun.Safe(q.GroupBy))
	}
	if q.OrderBy != "" {
		sq = sq.OrderExpr("?", bun.Safe(q.OrderBy))
	}
	if q.Limit > 0 {
		sq = sq.Limit(q.Limit)
	}
	if q.Offset > 0 {
		sq = sq.Offset(q.Offset)
	}

	e.log.Debug("select", zap.String("query", sq.String()))

	rows, err := sq.Rows(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return records, nil
}

func scanRecords(rows *sql.Rows) ([]*overlay.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []*overlay.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := overlay.NewRecord()
		for i, c := range cols {
			rec.Set(c, overlay.ValueOf(vals[i]))
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DescribeColumns — имена колонок таблицы.
func (e *Executor) DescribeColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	var query string
	switch e.db.Dialect().Name() {
	case dialect.SQLite:
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?"
	}

	rows, err := e.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Trace(err)
		}
		out[name] = struct{}{}
	}
	return out, errors.Trace(rows.Err())
}
