package overlay

import "strings"

// OverlayMode — что делать с записями без перевода
type OverlayMode string

const (
	ModeNone              OverlayMode = ""
	ModeHideNonTranslated OverlayMode = "hideNonTranslated"
)

// ParseOverlayMode: "hideNonTranslated" (без учёта регистра) или режим по умолчанию.
func ParseOverlayMode(s string) OverlayMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeHideNonTranslated)) {
		return ModeHideNonTranslated
	}
	return ModeNone
}

// Служебные значения колонки языка
const (
	LanguageDefault = 0
	LanguageAll     = -1
)

// Context — параметры текущего запроса фронтенда. Только для чтения.
type Context struct {
	Language          int // запрошенный язык; 0 — язык по умолчанию
	OverlayMode       OverlayMode
	ShowHiddenPage    bool
	ShowHiddenRecords bool
	Groups            []int // группы посетителя для fe_group
}
