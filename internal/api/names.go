// api/names.go
package api

import "strings"

// NormalizeTableName возвращает имя таблицы из реестра.
// Сначала точное совпадение, затем регистронезависимое (должно быть единственным).
func (s *Storage) NormalizeTableName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	cat, _ := s.snapshot()
	if _, ok := cat[name]; ok {
		return name, true
	}

	var found string
	for t := range cat {
		if strings.EqualFold(t, name) {
			if found != "" { // неуникально
				return "", false
			}
			found = t
		}
	}
	return found, found != ""
}
