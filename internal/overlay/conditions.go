package overlay

import (
	"strconv"
	"strings"
)

// TablePages — таблица страниц: для неё скрытые записи показываются по ShowHiddenPage
const TablePages = "pages"

// LanguageCondition — условие на колонку языка для базового запроса (без ведущего AND).
func (s *Service) LanguageCondition(table string, rc Context) string {
	t, ok := s.registry.Describe(table)
	if !ok || t.Ctrl.LanguageField == "" {
		return ""
	}
	lang := table + "." + t.Ctrl.LanguageField
	requested := strconv.Itoa(rc.Language)

	if t.Ctrl.TransOrigPointerField == "" {
		return lang + " = " + requested
	}

	// язык по умолчанию и «все языки»
	cond := lang + " IN (0,-1)"
	// плюс записи, которые существуют только на запрошенном языке
	if rc.Language > LanguageDefault {
		cond += " OR (" + lang + " = " + requested +
			" AND " + table + "." + t.Ctrl.TransOrigPointerField + " = 0)"
	}
	return cond
}

// EnableFieldsCondition — условие видимости записей (без ведущего AND).
// showHidden=false берёт флаг из контекста: ShowHiddenPage для pages, иначе ShowHiddenRecords.
func (s *Service) EnableFieldsCondition(table string, rc Context, showHidden bool, ignore IgnoreSet) string {
	if _, ok := s.registry.Describe(table); !ok {
		return ""
	}
	if !showHidden {
		if table == TablePages {
			showHidden = rc.ShowHiddenPage
		} else {
			showHidden = rc.ShowHiddenRecords
		}
	}
	return stripAnd(s.rules.EnableFieldsClause(table, showHidden, ignore, rc.Groups))
}

func stripAnd(clause string) string {
	trimmed := strings.TrimLeft(clause, " ")
	if len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "AND ") {
		return strings.TrimSpace(trimmed[4:])
	}
	return strings.TrimSpace(clause)
}
