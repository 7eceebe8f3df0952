package pg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect"

	"overlays/internal/dsl"
)

func TestGenerateDDL(t *testing.T) {
	cat := testCatalog(t)

	ddl, err := GenerateDDL(cat, dialect.PG)
	require.NoError(t, err)
	require.Len(t, ddl, 3)

	content := ddl["tt_content"]
	assert.Contains(t, content, `create table if not exists "tt_content"`)
	assert.Contains(t, content, `"uid" bigserial primary key`)
	assert.Contains(t, content, `"sys_language_uid" bigint not null default 0`)
	assert.Contains(t, content, `"l18n_parent" bigint not null default 0`)
	assert.Contains(t, content, `"fe_group" text not null default ''`)
	assert.Contains(t, content, `"header" text null`)
	assert.Contains(t, content, `create index if not exists "tt_content_l10n_idx" on "tt_content"("sys_language_uid", "l18n_parent")`)

	// pid у таблицы переводов — служебная колонка, второй раз не добавляется
	overlayDDL := ddl["pages_language_overlay"]
	assert.Equal(t, 1, strings.Count(overlayDDL, `"pid" bigint`))

	sqlite, err := GenerateDDL(cat, dialect.SQLite)
	require.NoError(t, err)
	assert.Contains(t, sqlite["pages"], `"uid" integer primary key autoincrement`)
}

func TestGenerateDDLErrors(t *testing.T) {
	_, err := GenerateDDL(dsl.Catalog{"order": {Name: "order"}}, dialect.PG)
	require.Error(t, err)

	_, err = GenerateDDL(dsl.Catalog{"a": {Name: "a", Fields: []dsl.Field{{Name: "x", Type: "blob"}}}}, dialect.PG)
	require.Error(t, err)
}
