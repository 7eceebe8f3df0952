package pg

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect"

	"overlays/internal/dsl"
	"overlays/internal/overlay"
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

func mapType(f dsl.Field) (string, error) {
	switch strings.ToLower(f.Type) {
	case "string", "text":
		return "text", nil
	case "int":
		return "bigint", nil
	case "float":
		return "double precision", nil
	case "bool":
		return "boolean", nil
	default:
		return "", fmt.Errorf("unknown type: %s", f.Type)
	}
}

type column struct {
	name, typ string
}

// GenerateDDL возвращает карту table -> SQL (CREATE TABLE + индекс для поиска переводов).
// Служебные колонки (uid, pid, язык, указатель на оригинал, delete, enable) добавляются сами.
func GenerateDDL(catalog dsl.Catalog, d dialect.Name) (map[string]string, error) {
	out := make(map[string]string, len(catalog))

	for _, name := range catalog.Names() {
		t := catalog[name]
		if isReserved(name) {
			return nil, fmt.Errorf("%s: table name is a reserved word", name)
		}

		pk := `"uid" bigserial primary key`
		if d == dialect.SQLite {
			pk = `"uid" integer primary key autoincrement`
		}
		cols := []string{pk}
		seen := map[string]struct{}{overlay.FieldUID: {}}

		system := []column{{overlay.FieldPID, "bigint"}}
		if t.Ctrl.LanguageField != "" {
			system = append(system, column{t.Ctrl.LanguageField, "bigint"})
		}
		if t.Ctrl.TransOrigPointerField != "" {
			system = append(system, column{t.Ctrl.TransOrigPointerField, "bigint"})
		}
		if t.Ctrl.DeleteField != "" {
			system = append(system, column{t.Ctrl.DeleteField, "bigint"})
		}
		for _, c := range []string{t.Enable.Disabled, t.Enable.StartTime, t.Enable.EndTime} {
			if c != "" {
				system = append(system, column{c, "bigint"})
			}
		}
		for _, c := range system {
			if _, dup := seen[strings.ToLower(c.name)]; dup {
				continue
			}
			seen[strings.ToLower(c.name)] = struct{}{}
			cols = append(cols, fmt.Sprintf("%s %s not null default 0", sqlIdent(c.name), c.typ))
		}
		if fg := t.Enable.FeGroup; fg != "" {
			if _, dup := seen[strings.ToLower(fg)]; !dup {
				seen[strings.ToLower(fg)] = struct{}{}
				cols = append(cols, fmt.Sprintf("%s text not null default ''", sqlIdent(fg)))
			}
		}

		// пользовательские поля
		for _, f := range t.Fields {
			key := strings.ToLower(f.Name)
			if _, exists := seen[key]; exists {
				// поле уже добавлено как служебное (например pid у таблицы переводов)
				continue
			}
			seen[key] = struct{}{}

			typ, err := mapType(f)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, f.Name, err)
			}
			null := "null"
			if _, ok := f.Options["required"]; ok {
				null = "not null"
			}
			def := ""
			if dv, ok := f.Options["default"]; ok && strings.TrimSpace(dv) != "" {
				def = " default '" + strings.ReplaceAll(dv, "'", "''") + "'"
			}
			cols = append(cols, fmt.Sprintf("%s %s %s%s", sqlIdent(f.Name), typ, null, def))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "create table if not exists %s (\n  %s\n);\n", sqlIdent(name), strings.Join(cols, ",\n  "))

		// поиск переводов: язык + указатель на оригинал
		if t.Ctrl.LanguageField != "" && t.Ctrl.TransOrigPointerField != "" {
			fmt.Fprintf(&sb, "create index if not exists %s on %s(%s, %s);\n",
				sqlIdent(name+"_l10n_idx"), sqlIdent(name),
				sqlIdent(t.Ctrl.LanguageField), sqlIdent(t.Ctrl.TransOrigPointerField))
		}
		out[name] = sb.String()
	}
	return out, nil
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }
