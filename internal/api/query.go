package api

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ==== Типы сортировки и параметров листинга ====

type SortKey struct {
	Field string
	Desc  bool
}

// Filter — условие field__op=value; op по умолчанию eq
type Filter struct {
	Field  string
	Op     string
	Values []string
}

type ListParams struct {
	Language   string // L: код или uid языка
	Mode       string // mode: "" | hideNonTranslated
	HasMode    bool
	Fields     []string
	Limit      int
	Offset     int
	Sort       []SortKey
	Filters    []Filter
	ShowHidden bool
	Groups     []int
}

const (
	defaultLimit = 50
	maxLimit     = 1000
)

var filterOps = map[string]string{
	"eq": "=", "ne": "<>", "gt": ">", "gte": ">=", "lt": "<", "lte": "<=", "in": "IN",
}

// служебные ключи, не попадающие в фильтры
var reservedKeys = map[string]struct{}{
	"L": {}, "mode": {}, "fields": {}, "sort": {}, "limit": {}, "offset": {},
	"_sort": {}, "_limit": {}, "_offset": {}, "show_hidden": {}, "groups": {}, "uids": {},
}

// ==== Парсинг query-параметров ====

func parseListParams(q url.Values) (ListParams, []FieldError) {
	var errs []FieldError
	lp := ListParams{
		Language: strings.TrimSpace(q.Get("L")),
		Limit:    defaultLimit,
	}
	if _, ok := q["mode"]; ok {
		lp.HasMode = true
		lp.Mode = strings.TrimSpace(q.Get("mode"))
	}

	// limit
	lv := q.Get("_limit")
	if lv == "" {
		lv = q.Get("limit")
	}
	if lv != "" {
		if n, err := strconv.Atoi(lv); err == nil && n > 0 && n <= maxLimit {
			lp.Limit = n
		}
	}

	// offset
	ov := q.Get("_offset")
	if ov == "" {
		ov = q.Get("offset")
	}
	if ov != "" {
		if n, err := strconv.Atoi(ov); err == nil && n >= 0 {
			lp.Offset = n
		}
	}

	// fields
	for _, f := range strings.Split(q.Get("fields"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			lp.Fields = append(lp.Fields, f)
		}
	}

	// sort
	sv := strings.TrimSpace(q.Get("_sort"))
	if sv == "" {
		sv = strings.TrimSpace(q.Get("sort"))
	}
	for _, p := range strings.Split(sv, ",") {
		p = strings.TrimSpace(p)
		desc := false
		if strings.HasPrefix(p, "-") {
			desc = true
			p = strings.TrimPrefix(p, "-")
		} else if strings.HasPrefix(p, "+") {
			p = strings.TrimPrefix(p, "+")
		}
		if p != "" {
			lp.Sort = append(lp.Sort, SortKey{Field: p, Desc: desc})
		}
	}

	if v := strings.TrimSpace(q.Get("show_hidden")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, ferr(ErrBadValue, "show_hidden", "show_hidden must be a boolean"))
		}
		lp.ShowHidden = b
	}

	if v := strings.TrimSpace(q.Get("groups")); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			errs = append(errs, ferr(ErrBadValue, "groups", err.Error()))
		}
		for _, id := range ids {
			lp.Groups = append(lp.Groups, int(id))
		}
	}

	// фильтры: field=value, field__op=value, field__in=a,b
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, skip := reservedKeys[key]; skip {
			continue
		}
		vals := q[key]
		if len(vals) == 0 {
			continue
		}
		field, op := key, "eq"
		if i := strings.LastIndex(key, "__"); i > 0 {
			field, op = key[:i], key[i+2:]
		}
		if _, ok := filterOps[op]; !ok {
			errs = append(errs, ferr(ErrUnknownOp, key, "unknown filter operator '"+op+"'"))
			continue
		}
		var parts []string
		if op == "in" {
			for _, p := range strings.Split(vals[0], ",") {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
		} else {
			parts = []string{vals[0]}
		}
		if len(parts) == 0 {
			errs = append(errs, ferr(ErrBadValue, key, "empty filter value"))
			continue
		}
		lp.Filters = append(lp.Filters, Filter{Field: field, Op: op, Values: parts})
	}

	return lp, errs
}

// selectFields: пусто — все колонки
func (lp ListParams) selectFields(table string) string {
	if len(lp.Fields) == 0 {
		return "*"
	}
	out := make([]string, 0, len(lp.Fields))
	for _, f := range lp.Fields {
		out = append(out, table+"."+f)
	}
	return strings.Join(out, ", ")
}

// orderBy: без сортировки — по uid, чтобы страницы были стабильны
func (lp ListParams) orderBy(table string) string {
	if len(lp.Sort) == 0 {
		return table + ".uid"
	}
	out := make([]string, 0, len(lp.Sort))
	for _, k := range lp.Sort {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		out = append(out, table+"."+k.Field+" "+dir)
	}
	return strings.Join(out, ", ")
}

// where — фильтры через AND; значения экранируются как строковые литералы
func (lp ListParams) where(table string) string {
	conds := make([]string, 0, len(lp.Filters))
	for _, f := range lp.Filters {
		col := table + "." + f.Field
		if f.Op == "in" {
			lits := make([]string, 0, len(f.Values))
			for _, v := range f.Values {
				lits = append(lits, quoteLiteral(v))
			}
			conds = append(conds, col+" IN ("+strings.Join(lits, ",")+")")
			continue
		}
		conds = append(conds, col+" "+filterOps[f.Op]+" "+quoteLiteral(f.Values[0]))
	}
	return strings.Join(conds, " AND ")
}
