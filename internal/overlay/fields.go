package overlay

import (
	"context"
	"strings"
)

// SelectOverlayFields гарантирует, что в списке полей есть uid, pid и колонка языка.
// Недостающие колонки добавляются, если они есть в таблице.
// ErrNoLocalizationDescriptor / ErrOverlayFieldsUnavailable — наложение для запроса невозможно.
func (s *Service) SelectOverlayFields(ctx context.Context, table, selectFields string) (string, error) {
	t, ok := s.registry.Describe(table)
	if !ok {
		return "", ErrNoLocalizationDescriptor.GenWithStackByArgs(table)
	}
	// переводы в отдельной таблице — добавлять нечего
	if t.Ctrl.TransForeignTable != "" {
		return selectFields, nil
	}

	wildcard := strings.TrimSpace(selectFields) == "*"
	required := []string{FieldUID, FieldPID, t.Ctrl.LanguageField}
	present := make(map[string]bool, len(required))
	missing := false
	for _, f := range required {
		// проверка по подстроке: "tt_content.uid" тоже считается
		present[f] = f != "" && (wildcard || strings.Contains(selectFields, f))
		missing = missing || !present[f]
	}
	if !missing {
		return selectFields, nil
	}

	available, err := s.exec.DescribeColumns(ctx, table)
	if err != nil {
		return "", err
	}

	selected := selectFields
	var absent []string
	for _, f := range required {
		if present[f] {
			continue
		}
		if _, ok := available[f]; ok && f != "" {
			if !wildcard {
				selected += ", " + table + "." + f
			}
			continue
		}
		absent = append(absent, f)
	}
	if len(absent) > 0 {
		return "", ErrOverlayFieldsUnavailable.GenWithStackByArgs(table, absent)
	}
	return selected, nil
}
