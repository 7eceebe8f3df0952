package overlay

import (
	"context"

	"go.uber.org/zap"
)

// OverlayRecordSet накладывает переводы на язык rc.Language на весь набор записей.
// Переводы запрашиваются одним запросом. Порядок записей сохраняется; в режиме
// hideNonTranslated записи без перевода выбрасываются (кроме записей «для всех языков»).
// Если наложение невозможно, набор возвращается без изменений.
func (s *Service) OverlayRecordSet(ctx context.Context, table string, records []*Record, rc Context) ([]*Record, error) {
	out, err := s.overlayRecordSet(ctx, table, records, rc)
	if IsSkip(err) {
		s.log.Debug("overlay skipped",
			zap.String("table", table), zap.Int("language", rc.Language), zap.Error(err))
		return records, nil
	}
	return out, err
}

func (s *Service) overlayRecordSet(ctx context.Context, table string, records []*Record, rc Context) ([]*Record, error) {
	if len(records) == 0 {
		return records, nil
	}
	// проверяем по первой строке, что uid и pid выбраны
	first := records[0]
	if uid, _ := first.Get(FieldUID); uid.Empty() {
		return nil, ErrMissingBaseKeys.GenWithStackByArgs(table)
	}
	if pid, _ := first.Get(FieldPID); pid.Empty() {
		return nil, ErrMissingBaseKeys.GenWithStackByArgs(table)
	}

	t, ok := s.registry.Describe(table)
	if !ok {
		return nil, ErrNoLocalizationDescriptor.GenWithStackByArgs(table)
	}

	switch {
	case t.Ctrl.LanguageField != "" && t.Ctrl.TransOrigPointerField != "":
		return s.overlayLocal(ctx, table, t.Ctrl.LanguageField, records, rc)
	case t.Ctrl.TransForeignTable != "":
		return s.overlayForeign(ctx, table, t.Ctrl.TransForeignTable, records, rc)
	default:
		return nil, ErrNoLocalizationDescriptor.GenWithStackByArgs(table)
	}
}

// переводы в той же таблице
func (s *Service) overlayLocal(ctx context.Context, table, langField string, records []*Record, rc Context) ([]*Record, error) {
	if !records[0].Isset(langField) {
		return nil, ErrOverlayFieldsUnavailable.GenWithStackByArgs(table, []string{langField})
	}
	language := func(r *Record) int64 {
		n, _ := r.Int(langField)
		return n
	}

	// только язык по умолчанию и «все языки»
	filtered := make([]*Record, 0, len(records))
	for _, r := range records {
		if language(r) <= LanguageDefault {
			filtered = append(filtered, r)
		}
	}
	// при языке по умолчанию записи на других языках не отдаём вовсе
	if rc.Language <= LanguageDefault {
		return filtered, nil
	}

	uids := make([]int64, 0, len(filtered))
	for _, r := range filtered {
		uid, _ := r.UID()
		uids = append(uids, uid)
	}
	overlays, err := s.FetchLocalOverlays(ctx, table, uids, rc)
	if err != nil {
		return nil, err
	}

	out := make([]*Record, 0, len(records))
	for _, r := range records {
		lang := language(r)
		if lang == int64(rc.Language) {
			// уже на нужном языке
			out = append(out, r)
			continue
		}
		uid, _ := r.UID()
		pid, _ := r.PID()
		if ov, ok := overlays.Lookup(uid, pid); ok {
			out = append(out, s.MergeRecord(table, r, ov))
			continue
		}
		if rc.OverlayMode != ModeHideNonTranslated || lang == LanguageAll {
			out = append(out, r)
		}
	}
	return out, nil
}

// переводы в отдельной таблице: один перевод на оригинал, pid строки перевода не учитывается
func (s *Service) overlayForeign(ctx context.Context, table, foreignTable string, records []*Record, rc Context) ([]*Record, error) {
	ft, ok := s.registry.Describe(foreignTable)
	if !ok || ft.Ctrl.TransOrigPointerTable != table ||
		ft.Ctrl.TransOrigPointerField == "" || ft.Ctrl.LanguageField == "" {
		return nil, ErrInvalidForeignTable.GenWithStackByArgs(foreignTable, table)
	}

	uids := make([]int64, 0, len(records))
	for _, r := range records {
		uid, _ := r.UID()
		uids = append(uids, uid)
	}
	overlays, err := s.FetchForeignOverlays(ctx, foreignTable, uids, rc)
	if err != nil {
		return nil, err
	}

	out := make([]*Record, 0, len(records))
	for _, r := range records {
		uid, _ := r.UID()
		if ov, ok := overlays[uid]; ok {
			out = append(out, s.MergeRecord(table, r, ov))
			continue
		}
		if rc.OverlayMode != ModeHideNonTranslated {
			out = append(out, r)
		}
	}
	return out, nil
}
