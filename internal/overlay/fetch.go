package overlay

import (
	"context"
	"strconv"
	"strings"
)

// OverlayIndex — переводы по uid оригинала и pid: из-за версионирования у одного оригинала
// может быть несколько переводов, нужный определяется ещё и по pid.
type OverlayIndex map[int64]map[int64]*Record

// Lookup — перевод для оригинала uid на странице pid
func (ix OverlayIndex) Lookup(uid, pid int64) (*Record, bool) {
	byPid, ok := ix[uid]
	if !ok {
		return nil, false
	}
	rec, ok := byPid[pid]
	return rec, ok
}

// ForeignOverlayIndex — переводы из отдельной таблицы: один перевод на оригинал.
type ForeignOverlayIndex map[int64]*Record

// FetchOverlays — все переводы на язык rc.Language для uids одним запросом,
// таблица переводов выбирается по реестру. Для отдельной таблицы переводов второй ключ
// индекса — pid строки перевода.
func (s *Service) FetchOverlays(ctx context.Context, table string, uids []int64, rc Context) (OverlayIndex, error) {
	if len(uids) == 0 {
		return OverlayIndex{}, nil
	}
	t, ok := s.registry.Describe(table)
	if ok && t.Ctrl.TransForeignTable != "" {
		foreign, err := s.FetchForeignOverlays(ctx, t.Ctrl.TransForeignTable, uids, rc)
		if err != nil {
			return nil, err
		}
		out := make(OverlayIndex, len(foreign))
		for uid, rec := range foreign {
			pid, _ := rec.PID()
			out[uid] = map[int64]*Record{pid: rec}
		}
		return out, nil
	}
	return s.FetchLocalOverlays(ctx, table, uids, rc)
}

// FetchLocalOverlays — переводы, лежащие в той же таблице, что и оригиналы.
// При нескольких строках на одну пару (uid, pid) выигрывает последняя; строки упорядочены по uid,
// так что это перевод с наибольшим uid.
func (s *Service) FetchLocalOverlays(ctx context.Context, table string, uids []int64, rc Context) (OverlayIndex, error) {
	overlays := OverlayIndex{}
	if len(uids) == 0 {
		return overlays, nil
	}
	t, ok := s.registry.Describe(table)
	if !ok {
		return nil, ErrNoLocalizationDescriptor.GenWithStackByArgs(table)
	}

	rows, err := s.selectOverlayRows(ctx, table, t.Ctrl.LanguageField, t.Ctrl.TransOrigPointerField, uids, rc)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		orig, ok := row.Int(t.Ctrl.TransOrigPointerField)
		if !ok {
			continue
		}
		pid, _ := row.PID()
		if overlays[orig] == nil {
			overlays[orig] = map[int64]*Record{}
		}
		overlays[orig][pid] = row
	}
	return overlays, nil
}

// FetchForeignOverlays — переводы из отдельной таблицы foreignTable, ключ — uid оригинала.
func (s *Service) FetchForeignOverlays(ctx context.Context, foreignTable string, uids []int64, rc Context) (ForeignOverlayIndex, error) {
	overlays := ForeignOverlayIndex{}
	if len(uids) == 0 {
		return overlays, nil
	}
	t, ok := s.registry.Describe(foreignTable)
	if !ok {
		return nil, ErrNoLocalizationDescriptor.GenWithStackByArgs(foreignTable)
	}

	rows, err := s.selectOverlayRows(ctx, foreignTable, t.Ctrl.LanguageField, t.Ctrl.TransOrigPointerField, uids, rc)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if orig, ok := row.Int(t.Ctrl.TransOrigPointerField); ok {
			overlays[orig] = row
		}
	}
	return overlays, nil
}

// один запрос на все uids
func (s *Service) selectOverlayRows(ctx context.Context, table, langField, pointerField string, uids []int64, rc Context) ([]*Record, error) {
	if langField == "" || pointerField == "" {
		return nil, ErrOverlayFieldsUnavailable.GenWithStackByArgs(table, []string{langField, pointerField})
	}
	where := langField + " = " + strconv.Itoa(rc.Language) +
		" AND " + pointerField + " IN (" + joinIDs(uniqueIDs(uids)) + ")"
	if enable := s.EnableFieldsCondition(table, rc, false, nil); enable != "" {
		where += " AND " + enable
	}
	return s.exec.Select(ctx, Query{
		Fields:  "*",
		Table:   table,
		Where:   where,
		OrderBy: table + "." + FieldUID,
	})
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
