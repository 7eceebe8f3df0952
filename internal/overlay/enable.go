package overlay

import (
	"strconv"
	"strings"
	"time"
)

// Ключи enable-правил для IgnoreSet
const (
	EnableDisabled  = "disabled"
	EnableStartTime = "starttime"
	EnableEndTime   = "endtime"
	EnableFeGroup   = "fe_group"
)

// EnableFields — правила видимости по колонкам из реестра.
// Время в колонках starttime/endtime — unix timestamp, 0 означает «не задано».
type EnableFields struct {
	registry Registry
	now      func() time.Time
}

func NewEnableFields(registry Registry, now func() time.Time) *EnableFields {
	if now == nil {
		now = time.Now
	}
	return &EnableFields{registry: registry, now: now}
}

// EnableFieldsClause возвращает " AND ..." или пустую строку.
func (e *EnableFields) EnableFieldsClause(table string, showHidden bool, ignore IgnoreSet, groups []int) string {
	t, ok := e.registry.Describe(table)
	if !ok {
		return ""
	}
	col := func(name string) string { return table + "." + name }

	var parts []string
	if t.Ctrl.DeleteField != "" {
		parts = append(parts, col(t.Ctrl.DeleteField)+" = 0")
	}
	if t.Enable.Disabled != "" && !showHidden && !ignore[EnableDisabled] {
		parts = append(parts, col(t.Enable.Disabled)+" = 0")
	}

	now := strconv.FormatInt(e.now().Unix(), 10)
	if t.Enable.StartTime != "" && !ignore[EnableStartTime] {
		parts = append(parts, col(t.Enable.StartTime)+" <= "+now)
	}
	if t.Enable.EndTime != "" && !ignore[EnableEndTime] {
		c := col(t.Enable.EndTime)
		parts = append(parts, "("+c+" = 0 OR "+c+" > "+now+")")
	}
	if t.Enable.FeGroup != "" && !ignore[EnableFeGroup] {
		parts = append(parts, groupCondition(col(t.Enable.FeGroup), groups))
	}

	if len(parts) == 0 {
		return ""
	}
	return " AND " + strings.Join(parts, " AND ")
}

// fe_group — список групп через запятую; пусто/0 — доступно всем
func groupCondition(c string, groups []int) string {
	alts := []string{c + " IS NULL", c + " = ''", c + " = '0'"}
	for _, g := range groups {
		alts = append(alts, "(',' || "+c+" || ',') LIKE '%,"+strconv.Itoa(g)+",%'")
	}
	return "(" + strings.Join(alts, " OR ") + ")"
}
