package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRecord(t *testing.T) {
	s := newTestService(newFakeExecutor())

	base := RecordOf("uid", 5, "pid", 10, "title", "A", "sys_language_uid", 0)
	ov := RecordOf("uid", 99, "pid", 10, "title", "B", "sys_language_uid", 2)

	got := s.MergeRecord("tt_content", base, ov)
	want := RecordOf("uid", 5, "pid", 10, "title", "B", "sys_language_uid", 0, FieldLocalizedUID, 99)
	assert.True(t, want.Equal(got), "got %v", got.Map())

	// у таблицы без колонки языка поле sys_language_uid — обычное поле
	got = s.MergeRecord("plain", base, ov)
	lang, _ := got.Int("sys_language_uid")
	assert.EqualValues(t, 2, lang)

	// оригинал не изменён
	assert.True(t, RecordOf("uid", 5, "pid", 10, "title", "A", "sys_language_uid", 0).Equal(base))
}

func TestMergeRecordKeepsBaseKeys(t *testing.T) {
	s := newTestService(newFakeExecutor())

	base := RecordOf("uid", 5, "pid", 10, "title", "A")
	ov := RecordOf("uid", 99, "pid", 77, "title", "B", "only_in_overlay", "x")

	got := s.MergeRecord("tt_content", base, ov)
	uid, _ := got.UID()
	pid, _ := got.PID()
	assert.EqualValues(t, 5, uid)
	assert.EqualValues(t, 10, pid)
	_, ok := got.Get("only_in_overlay")
	assert.False(t, ok)
	lu, _ := got.Int(FieldLocalizedUID)
	assert.EqualValues(t, 99, lu)
}

func TestMergeRecordModes(t *testing.T) {
	s := newTestService(newFakeExecutor())
	base := RecordOf("uid", 1, "pid", 1, "header", "Base header", "image", 3, "title", "Base", "bodytext", "text")

	cases := []struct {
		name  string
		ov    *Record
		field string
		want  string
	}{
		{"mergeIfNotBlank blank", RecordOf("uid", 2, "header", "   "), "header", "Base header"},
		{"mergeIfNotBlank empty", RecordOf("uid", 2, "header", ""), "header", "Base header"},
		{"mergeIfNotBlank value", RecordOf("uid", 2, "header", "Titel"), "header", "Titel"},
		{"exclude", RecordOf("uid", 2, "image", 8), "image", "3"},
		{"default empty wins", RecordOf("uid", 2, "title", ""), "title", ""},
		{"null never overrides", RecordOf("uid", 2, "bodytext", nil), "bodytext", "text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.MergeRecord("tt_content", base, tc.ov)
			v, _ := got.Get(tc.field)
			assert.Equal(t, tc.want, v.String())
		})
	}
}
