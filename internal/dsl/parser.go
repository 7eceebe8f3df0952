package dsl

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	tableRe = regexp.MustCompile(`^table\s+([A-Za-z0-9_]+)\s*:$`)
	ctrlRe  = regexp.MustCompile(`^(ctrl|enable)\s*:\s*(.*)$`)
	fieldRe = regexp.MustCompile(`^\s*([\w_]+):\s*([^\s#]+)(.*)$`)
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// parse: options tokenizer — делит "k=v k2='v 2'" на токены, не рвёт по пробелам внутри кавычек
func splitOptionTokens(s string) []string {
	var out []string
	var buf []rune
	inSingle, inDouble := false, false

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	for _, r := range s {
		switch r {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
			buf = append(buf, r)
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
			buf = append(buf, r)
		default:
			if (r == ' ' || r == '\t') && !inSingle && !inDouble {
				flush()
				continue
			}
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

// parseOptions: "a=b flag c='d e'" -> map; флаг без значения → "true"
func parseOptions(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	if strings.HasPrefix(strings.ToLower(raw), "options:") {
		raw = strings.TrimSpace(raw[len("options:"):])
	}
	raw = strings.ReplaceAll(raw, ",", " ")

	opts := map[string]string{}
	for _, tok := range splitOptionTokens(raw) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !strings.Contains(tok, "=") {
			opts[strings.ToLower(tok)] = "true"
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if len(v) >= 2 {
			if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
				v = v[1 : len(v)-1]
			}
		}
		if k != "" {
			opts[k] = v
		}
	}
	return opts
}

func normalizeL10nMode(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "default":
		return "", nil
	case "exclude":
		return L10nExclude, nil
	case "mergeifnotblank":
		return L10nMergeIfNotBlank, nil
	default:
		return "", fmt.Errorf("unknown l10n_mode %q", v)
	}
}

// LoadTables читает один .dsl файл
func LoadTables(path string) ([]*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseTables(file)
}

// ParseTables разбирает описание таблиц из потока
func ParseTables(r io.Reader) ([]*Table, error) {
	var tables []*Table
	var current *Table
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// table <name>:
		if m := tableRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				tables = append(tables, current)
			}
			current = &Table{Name: m[1]}
			continue
		}
		if current == nil {
			// всё вне таблицы игнорируем
			continue
		}

		// ctrl / enable
		if m := ctrlRe.FindStringSubmatch(line); m != nil {
			opts := parseOptions(m[2])
			if m[1] == "ctrl" {
				if err := applyCtrl(current, opts); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			} else {
				if err := applyEnable(current, opts); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			continue
		}

		// поля
		if m := fieldRe.FindStringSubmatch(line); m != nil {
			if !identRe.MatchString(m[1]) {
				return nil, fmt.Errorf("line %d: invalid field name %q", lineNo, m[1])
			}
			f := Field{
				Name:    m[1],
				Type:    strings.ToLower(m[2]),
				Options: parseOptions(m[3]),
			}
			if v, ok := f.Options["l10n_mode"]; ok {
				mode, err := normalizeL10nMode(v)
				if err != nil {
					return nil, fmt.Errorf("line %d: %s.%s: %w", lineNo, current.Name, f.Name, err)
				}
				f.L10nMode = mode
				delete(f.Options, "l10n_mode")
			}
			current.Fields = append(current.Fields, f)
			continue
		}

		return nil, fmt.Errorf("line %d: cannot parse %q", lineNo, line)
	}

	if current != nil {
		tables = append(tables, current)
	}
	return tables, scanner.Err()
}

func applyCtrl(t *Table, opts map[string]string) error {
	for k, v := range opts {
		if !identRe.MatchString(v) {
			return fmt.Errorf("%s: ctrl %s: invalid identifier %q", t.Name, k, v)
		}
		switch k {
		case "language":
			t.Ctrl.LanguageField = v
		case "parent":
			t.Ctrl.TransOrigPointerField = v
		case "parent_table":
			t.Ctrl.TransOrigPointerTable = v
		case "foreign":
			t.Ctrl.TransForeignTable = v
		case "delete":
			t.Ctrl.DeleteField = v
		default:
			return fmt.Errorf("%s: unknown ctrl option %q", t.Name, k)
		}
	}
	return nil
}

func applyEnable(t *Table, opts map[string]string) error {
	for k, v := range opts {
		if !identRe.MatchString(v) {
			return fmt.Errorf("%s: enable %s: invalid identifier %q", t.Name, k, v)
		}
		switch k {
		case "disabled":
			t.Enable.Disabled = v
		case "starttime":
			t.Enable.StartTime = v
		case "endtime":
			t.Enable.EndTime = v
		case "fe_group":
			t.Enable.FeGroup = v
		default:
			return fmt.Errorf("%s: unknown enable column %q", t.Name, k)
		}
	}
	return nil
}

// LoadCatalog обходит каталог и собирает все *.dsl в один реестр
func LoadCatalog(root string) (Catalog, error) {
	result := make(Catalog)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".dsl") {
			return nil
		}

		tables, err := LoadTables(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		for _, t := range tables {
			if _, exists := result[t.Name]; exists {
				return fmt.Errorf("duplicate table %q (file: %s)", t.Name, path)
			}
			result[t.Name] = t
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
