package overlay

import (
	"strings"

	"overlays/internal/dsl"
)

// MergeRecord накладывает перевод overlay на запись record по режимам l10n_mode таблицы.
// Исходная запись не меняется. uid, pid и колонка языка всегда остаются от оригинала,
// поля, которых нет в оригинале, не добавляются; NULL в переводе ничего не перекрывает.
func (s *Service) MergeRecord(table string, record, overlay *Record) *Record {
	t, _ := s.registry.Describe(table)
	langField := ""
	if t != nil {
		langField = t.Ctrl.LanguageField
	}

	merged := record.Clone()
	if uid, ok := overlay.Get(FieldUID); ok {
		merged.Set(FieldLocalizedUID, uid)
	}
	for _, key := range record.keys {
		if key == FieldUID || key == FieldPID || key == langField || !overlay.Isset(key) {
			continue
		}
		value := overlay.vals[key]
		switch mode, _ := t.L10nMode(key); mode {
		case dsl.L10nExclude:
			// остаётся значение оригинала
		case dsl.L10nMergeIfNotBlank:
			if strings.TrimSpace(value.String()) != "" {
				merged.Set(key, value)
			}
		default:
			merged.Set(key, value)
		}
	}
	return merged
}
