package overlay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Служебные поля записи
const (
	FieldUID          = "uid"
	FieldPID          = "pid"
	FieldLocalizedUID = "_LOCALIZED_UID"
)

// Kind — тип скалярного значения
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Value — скаляр из строки результата
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func Null() Value            { return Value{} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// ValueOf приводит значение драйвера БД к Value.
func ValueOf(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case bool:
		return Bool(t)
	case time.Time:
		return String(t.UTC().Format(time.RFC3339))
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// String — строковое представление (NULL → "")
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

// Int64 — числовое представление; ok=false для NULL и нечисловых строк
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Empty — пустое в смысле «нет значения»: NULL, "", "0", 0, false
func (v Value) Empty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == "" || v.s == "0"
	case KindInt:
		return v.i == 0
	case KindFloat:
		return v.f == 0
	case KindBool:
		return !v.b
	}
	return true
}

func (v Value) Equal(o Value) bool { return v == o }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// Record — строка результата: упорядоченные поля со скалярными значениями.
type Record struct {
	keys []string
	vals map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: map[string]Value{}}
}

// RecordOf собирает запись из пар имя/значение: RecordOf("uid", 1, "title", "A").
func RecordOf(kv ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		name, _ := kv[i].(string)
		r.Set(name, ValueOf(kv[i+1]))
	}
	return r
}

// Set добавляет или перезаписывает поле, сохраняя позицию существующего.
func (r *Record) Set(field string, v Value) {
	if _, ok := r.vals[field]; !ok {
		r.keys = append(r.keys, field)
	}
	r.vals[field] = v
}

// Get — значение поля; ok=false, если поля нет в записи.
func (r *Record) Get(field string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.vals[field]
	return v, ok
}

// Isset — поле есть и не NULL
func (r *Record) Isset(field string) bool {
	v, ok := r.Get(field)
	return ok && !v.IsNull()
}

// Int — числовое значение поля (0, false если нет или не число)
func (r *Record) Int(field string) (int64, bool) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	return v.Int64()
}

func (r *Record) UID() (int64, bool) { return r.Int(FieldUID) }
func (r *Record) PID() (int64, bool) { return r.Int(FieldPID) }

// Fields — имена полей в порядке колонок
func (r *Record) Fields() []string {
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int { return len(r.keys) }

// Clone — независимая копия
func (r *Record) Clone() *Record {
	c := &Record{
		keys: append([]string(nil), r.keys...),
		vals: make(map[string]Value, len(r.vals)),
	}
	for k, v := range r.vals {
		c.vals[k] = v
	}
	return c
}

// Equal — одинаковые поля в одинаковом порядке с одинаковыми значениями
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if len(r.keys) != len(o.keys) {
		return false
	}
	for i, k := range r.keys {
		if o.keys[i] != k || !r.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}

// Map — плоское представление для ответа API
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		v := r.vals[k]
		switch v.kind {
		case KindString:
			out[k] = v.s
		case KindInt:
			out[k] = v.i
		case KindFloat:
			out[k] = v.f
		case KindBool:
			out[k] = v.b
		default:
			out[k] = nil
		}
	}
	return out
}

// MarshalJSON сохраняет порядок колонок
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
