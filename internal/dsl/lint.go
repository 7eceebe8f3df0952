package dsl

import (
	"fmt"
	"sort"
	"strings"
)

type Issue struct {
	Table   string `json:"table"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var knownTypes = map[string]struct{}{
	"string": {}, "text": {}, "int": {}, "float": {}, "bool": {},
}

// Lint проверяет согласованность реестра. Пустой результат — всё ок.
func (c Catalog) Lint() []Issue {
	var issues []Issue
	add := func(table, field, code, msg string) {
		issues = append(issues, Issue{Table: table, Field: field, Code: code, Message: msg})
	}

	for _, name := range c.Names() {
		t := c[name]

		if t.Ctrl.TransOrigPointerField != "" && t.Ctrl.LanguageField == "" {
			add(name, t.Ctrl.TransOrigPointerField, "parent_without_language",
				"translation pointer is set but language column is missing")
		}
		if ft := t.Ctrl.TransForeignTable; ft != "" {
			foreign, ok := c[ft]
			switch {
			case !ok:
				add(name, "", "foreign_unknown", fmt.Sprintf("translation table %q is not described", ft))
			case foreign.Ctrl.TransOrigPointerTable != name:
				add(name, "", "foreign_mismatch",
					fmt.Sprintf("translation table %q does not point back (parent_table=%q)", ft, foreign.Ctrl.TransOrigPointerTable))
			case foreign.Ctrl.LanguageField == "" || foreign.Ctrl.TransOrigPointerField == "":
				add(name, "", "foreign_incomplete",
					fmt.Sprintf("translation table %q needs language and parent columns", ft))
			}
		}

		seen := map[string]struct{}{}
		for _, f := range t.Fields {
			key := strings.ToLower(f.Name)
			if _, dup := seen[key]; dup {
				add(name, f.Name, "field_duplicate", "field declared twice")
			}
			seen[key] = struct{}{}
			if _, ok := knownTypes[f.Type]; !ok {
				add(name, f.Name, "field_type", fmt.Sprintf("unknown type %q", f.Type))
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Table != issues[j].Table {
			return issues[i].Table < issues[j].Table
		}
		return issues[i].Field < issues[j].Field
	})
	return issues
}
