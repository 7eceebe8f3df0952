package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"overlays/internal/dsl"
)

// ===== META HANDLERS =====

type metaTableListItem struct {
	Table    string `json:"table"`
	Topology string `json:"topology"` // none | local | foreign
}

func topologyOf(t *dsl.Table) string {
	switch {
	case t.Ctrl.TransForeignTable != "":
		return "foreign"
	case t.Ctrl.LanguageField != "":
		return "local"
	}
	return "none"
}

func MetaListHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, _ := storage.snapshot()
		out := make([]metaTableListItem, 0, len(cat))
		for _, name := range cat.Names() {
			out = append(out, metaTableListItem{Table: name, Topology: topologyOf(cat[name])})
		}
		c.JSON(http.StatusOK, out)
	}
}

type metaField struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	L10nMode string            `json:"l10nMode"`
	Options  map[string]string `json:"options,omitempty"`
}

type metaCtrl struct {
	LanguageField         string `json:"languageField,omitempty"`
	TransOrigPointerField string `json:"transOrigPointerField,omitempty"`
	TransOrigPointerTable string `json:"transOrigPointerTable,omitempty"`
	TransForeignTable     string `json:"transForeignTable,omitempty"`
	DeleteField           string `json:"deleteField,omitempty"`
}

type metaEnable struct {
	Disabled  string `json:"disabled,omitempty"`
	StartTime string `json:"starttime,omitempty"`
	EndTime   string `json:"endtime,omitempty"`
	FeGroup   string `json:"fe_group,omitempty"`
}

type metaTable struct {
	Table    string      `json:"table"`
	Topology string      `json:"topology"`
	Ctrl     metaCtrl    `json:"ctrl"`
	Enable   metaEnable  `json:"enable"`
	Fields   []metaField `json:"fields"`
}

func MetaTableHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, ok := storage.NormalizeTableName(c.Param("table"))
		if !ok {
			_ = c.Error(ErrTableNotFound.GenWithStackByArgs(c.Param("table")))
			return
		}
		cat, _ := storage.snapshot()
		t := cat[name]

		fields := make([]metaField, 0, len(t.Fields))
		for _, f := range t.Fields {
			mode, ok := t.L10nMode(f.Name)
			if !ok {
				mode = dsl.L10nDefault
			}
			var opts map[string]string
			if len(f.Options) > 0 {
				opts = make(map[string]string, len(f.Options))
				for k, v := range f.Options {
					opts[k] = v
				}
			}
			fields = append(fields, metaField{Name: f.Name, Type: f.Type, L10nMode: mode, Options: opts})
		}

		c.JSON(http.StatusOK, metaTable{
			Table:    t.Name,
			Topology: topologyOf(t),
			Ctrl: metaCtrl{
				LanguageField:         t.Ctrl.LanguageField,
				TransOrigPointerField: t.Ctrl.TransOrigPointerField,
				TransOrigPointerTable: t.Ctrl.TransOrigPointerTable,
				TransForeignTable:     t.Ctrl.TransForeignTable,
				DeleteField:           t.Ctrl.DeleteField,
			},
			Enable: metaEnable{
				Disabled:  t.Enable.Disabled,
				StartTime: t.Enable.StartTime,
				EndTime:   t.Enable.EndTime,
				FeGroup:   t.Enable.FeGroup,
			},
			Fields: fields,
		})
	}
}

// GET /api/languages
func LanguagesHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, langs := storage.snapshot()
		c.JSON(http.StatusOK, gin.H{
			"name":  langs.Name,
			"items": langs.Visible(),
		})
	}
}
