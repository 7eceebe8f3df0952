package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadLanguages(t *testing.T) {
	p := writeFile(t, "site.yaml", `
items:
  - {uid: 0, code: en, title: English}
  - {uid: 2, code: de, title: Deutsch}
  - {uid: 3, code: fr, title: Français, hidden: true}
`)
	langs, err := LoadLanguages(p)
	require.NoError(t, err)
	assert.Equal(t, "site", langs.Name)
	assert.Len(t, langs.Items, 3)
	assert.Len(t, langs.Visible(), 2)

	for in, want := range map[string]int{"": 0, "de": 2, "DE": 2, "fr": 3, "2": 2, "7": 7, " en ": 0} {
		got, err := langs.Resolve(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err = langs.Resolve("xx")
	assert.Error(t, err)
	_, err = langs.Resolve("-1")
	assert.Error(t, err)
}

func TestLoadLanguagesInvalid(t *testing.T) {
	cases := map[string]string{
		"dup uid":  "items:\n  - {uid: 1, code: a}\n  - {uid: 1, code: b}\n",
		"dup code": "items:\n  - {uid: 1, code: a}\n  - {uid: 2, code: A}\n",
		"no code":  "items:\n  - {uid: 1}\n",
		"negative": "items:\n  - {uid: -1, code: all}\n",
		"yaml":     "items: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadLanguages(writeFile(t, "l.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := LoadLanguages(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultLanguages(t *testing.T) {
	langs, err := LoadLanguages("")
	require.NoError(t, err)
	require.Len(t, langs.Items, 1)
	uid, err := langs.Resolve("default")
	require.NoError(t, err)
	assert.Equal(t, 0, uid)
}
