package api

import (
	"strings"

	"overlays/internal/overlay"
	"overlays/internal/reference"
)

type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Коды ошибок, которыми будем пользоваться
const (
	ErrUnknownField = "unknown_field"
	ErrUnknownOp    = "unknown_op"
	ErrBadValue     = "bad_value"
	ErrNotFound     = "not_found"
)

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}

// validateColumns проверяет, что fields/sort/фильтры ссылаются на существующие колонки.
// Имена колонок попадают в SQL как есть, поэтому другого пути в запрос у них нет.
func validateColumns(lp ListParams, cols map[string]struct{}) []FieldError {
	var errs []FieldError
	check := func(param, name string) {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			errs = append(errs, ferr(ErrUnknownField, param, "unknown column '"+name+"'"))
		}
	}
	for _, f := range lp.Fields {
		check("fields", f)
	}
	for _, k := range lp.Sort {
		check("sort", k.Field)
	}
	for _, f := range lp.Filters {
		check(f.Field, f.Field)
	}
	return errs
}

// requestContext собирает overlay.Context из параметров запроса.
func requestContext(lp ListParams, langs *reference.Languages, defaultMode overlay.OverlayMode) (overlay.Context, []FieldError) {
	var errs []FieldError
	rc := overlay.Context{
		OverlayMode:       defaultMode,
		ShowHiddenPage:    lp.ShowHidden,
		ShowHiddenRecords: lp.ShowHidden,
		Groups:            lp.Groups,
	}

	lang, err := langs.Resolve(lp.Language)
	if err != nil {
		errs = append(errs, ferr(ErrBadValue, "L", err.Error()))
	}
	rc.Language = lang

	if lp.HasMode {
		mode := overlay.ParseOverlayMode(lp.Mode)
		if lp.Mode != "" && mode == overlay.ModeNone {
			errs = append(errs, ferr(ErrBadValue, "mode", "unknown overlay mode '"+lp.Mode+"'"))
		}
		rc.OverlayMode = mode
	}
	return rc, errs
}
