package dsl

import (
	"sort"
	"strings"
)

// Режимы слияния поля при наложении перевода (l10n_mode)
const (
	L10nDefault         = "default"
	L10nExclude         = "exclude"
	L10nMergeIfNotBlank = "mergeIfNotBlank"
)

// Table описывает локализационные настройки таблицы из DSL
type Table struct {
	Name   string
	Ctrl   Ctrl
	Enable EnableColumns
	Fields []Field
}

// Ctrl — служебные колонки таблицы, нужные для переводов
type Ctrl struct {
	LanguageField         string // колонка языка (пусто — таблица не локализуется)
	TransOrigPointerField string // ссылка перевода на оригинал (та же таблица)
	TransOrigPointerTable string // для таблицы переводов: таблица оригиналов
	TransForeignTable     string // переводы лежат в отдельной таблице
	DeleteField           string // soft delete
}

// EnableColumns — колонки видимости (enable fields)
type EnableColumns struct {
	Disabled  string
	StartTime string
	EndTime   string
	FeGroup   string
}

// Field описывает поле таблицы
type Field struct {
	Name     string
	Type     string            // string, int, float, bool
	L10nMode string            // default | exclude | mergeIfNotBlank
	Options  map[string]string // прочие опции
}

// Localizable — есть ли у таблицы хоть какая-то схема переводов
func (t *Table) Localizable() bool {
	if t == nil {
		return false
	}
	return (t.Ctrl.LanguageField != "" && t.Ctrl.TransOrigPointerField != "") || t.Ctrl.TransForeignTable != ""
}

// L10nMode возвращает режим слияния поля; ok=false, если для поля режим не задан.
func (t *Table) L10nMode(field string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, f := range t.Fields {
		if f.Name == field && f.L10nMode != "" {
			return f.L10nMode, true
		}
	}
	return "", false
}

// Field ищет поле по имени
func (t *Table) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// Catalog — реестр таблиц: имя -> описание
type Catalog map[string]*Table

// Describe реализует реестр локализации для ядра оверлеев.
func (c Catalog) Describe(table string) (*Table, bool) {
	t, ok := c[table]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// Names — отсортированный список таблиц
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
