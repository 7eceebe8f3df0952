package dsl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDSL = `
# контент
table tt_content:
  ctrl: language=sys_language_uid parent=l18n_parent delete=deleted
  enable: disabled=hidden starttime=starttime endtime=endtime fe_group=fe_group
  header: string l10n_mode=mergeIfNotBlank
  image: int l10n_mode=exclude
  bodytext: string   # без режима

table pages:
  ctrl: foreign=pages_language_overlay delete=deleted
  enable: disabled=hidden
  title: string

table pages_language_overlay:
  ctrl: language=sys_language_uid parent=pid parent_table=pages
  title: string
`

func TestParseTables(t *testing.T) {
	tables, err := ParseTables(strings.NewReader(sampleDSL))
	require.NoError(t, err)
	require.Len(t, tables, 3)

	content := tables[0]
	assert.Equal(t, "tt_content", content.Name)
	assert.Equal(t, Ctrl{LanguageField: "sys_language_uid", TransOrigPointerField: "l18n_parent", DeleteField: "deleted"}, content.Ctrl)
	assert.Equal(t, EnableColumns{Disabled: "hidden", StartTime: "starttime", EndTime: "endtime", FeGroup: "fe_group"}, content.Enable)
	require.Len(t, content.Fields, 3)
	assert.True(t, content.Localizable())

	mode, ok := content.L10nMode("header")
	assert.True(t, ok)
	assert.Equal(t, L10nMergeIfNotBlank, mode)
	mode, ok = content.L10nMode("image")
	assert.True(t, ok)
	assert.Equal(t, L10nExclude, mode)
	_, ok = content.L10nMode("bodytext")
	assert.False(t, ok)

	pages := tables[1]
	assert.Equal(t, "pages_language_overlay", pages.Ctrl.TransForeignTable)
	assert.True(t, pages.Localizable())

	overlay := tables[2]
	assert.Equal(t, "pages", overlay.Ctrl.TransOrigPointerTable)
	assert.Equal(t, "pid", overlay.Ctrl.TransOrigPointerField)
}

func TestParseTablesErrors(t *testing.T) {
	cases := map[string]string{
		"unknown mode":   "table a:\n  title: string l10n_mode=sometimes\n",
		"unknown ctrl":   "table a:\n  ctrl: lang=x\n",
		"bad identifier": "table a:\n  ctrl: language=x;drop\n",
		"unknown enable": "table a:\n  enable: hidden=hidden\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTables(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.dsl"), []byte(sampleDSL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	cat, err := LoadCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages", "pages_language_overlay", "tt_content"}, cat.Names())

	_, ok := cat.Describe("tt_content")
	assert.True(t, ok)
	_, ok = cat.Describe("missing")
	assert.False(t, ok)
	assert.Empty(t, cat.Lint())

	// дубликат в другом файле
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.dsl"), []byte("table pages:\n  title: string\n"), 0o644))
	_, err = LoadCatalog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate table")
}

func TestLint(t *testing.T) {
	cat := Catalog{
		"a": {Name: "a", Ctrl: Ctrl{TransOrigPointerField: "l18n_parent"}},
		"b": {Name: "b", Ctrl: Ctrl{TransForeignTable: "b_overlay"}},
		"c": {Name: "c", Ctrl: Ctrl{TransForeignTable: "d"}},
		"d": {Name: "d", Ctrl: Ctrl{TransOrigPointerTable: "x", LanguageField: "lang", TransOrigPointerField: "pid"}},
		"e": {Name: "e", Fields: []Field{{Name: "t", Type: "string"}, {Name: "T", Type: "blob"}}},
	}
	codes := map[string]bool{}
	for _, is := range cat.Lint() {
		codes[is.Code] = true
	}
	assert.True(t, codes["parent_without_language"])
	assert.True(t, codes["foreign_unknown"])
	assert.True(t, codes["foreign_mismatch"])
	assert.True(t, codes["field_duplicate"])
	assert.True(t, codes["field_type"])
}
