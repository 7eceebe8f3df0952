package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadLanguages читает справочник языков из YAML.
// Пустой путь — справочник только с языком по умолчанию.
func LoadLanguages(path string) (*Languages, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var langs Languages
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Имя справочника — из langs.Name или из имени файла
	if langs.Name == "" {
		langs.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := langs.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &langs, nil
}

// Default — справочник из одного языка по умолчанию (uid 0).
func Default() *Languages {
	return &Languages{Name: "languages", Items: []Language{{UID: 0, Code: "default", Title: "Default"}}}
}

func (l *Languages) validate() error {
	uids := map[int]struct{}{}
	codes := map[string]struct{}{}
	for _, it := range l.Items {
		if it.UID < 0 {
			return fmt.Errorf("language %q: uid must be >= 0, got %d", it.Code, it.UID)
		}
		code := strings.ToLower(strings.TrimSpace(it.Code))
		if code == "" {
			return fmt.Errorf("language uid %d: empty code", it.UID)
		}
		if _, dup := uids[it.UID]; dup {
			return fmt.Errorf("duplicate language uid %d", it.UID)
		}
		if _, dup := codes[code]; dup {
			return fmt.Errorf("duplicate language code %q", it.Code)
		}
		uids[it.UID] = struct{}{}
		codes[code] = struct{}{}
	}
	return nil
}

// Visible — языки без hidden, в порядке файла.
func (l *Languages) Visible() []Language {
	out := make([]Language, 0, len(l.Items))
	for _, it := range l.Items {
		if !it.Hidden {
			out = append(out, it)
		}
	}
	return out
}

// Resolve переводит значение параметра L (число или код, например "de") в uid языка.
// Пустое значение — язык по умолчанию. Число принимается и без записи в справочнике.
func (l *Languages) Resolve(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("language %d: must be >= 0", n)
		}
		return n, nil
	}
	for _, it := range l.Items {
		if strings.EqualFold(it.Code, v) {
			return it.UID, nil
		}
	}
	return 0, fmt.Errorf("unknown language %q", v)
}
