package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"overlays/internal/dsl"
	"overlays/internal/reference"
)

type reloadReq struct {
	DSLRoot       string `json:"dsl_root"`       // директория с *.dsl
	LanguagesFile string `json:"languages_file"` // справочник языков
}

func AdminReloadHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reloadReq
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
		}

		dslRoot := strings.TrimSpace(req.DSLRoot)
		if dslRoot == "" {
			dslRoot = storage.opts.DSLDir
		}
		langsFile := strings.TrimSpace(req.LanguagesFile)
		if langsFile == "" {
			langsFile = storage.opts.LanguagesFile
		}

		// 1) читаем новый реестр и справочник
		newCatalog, err := dsl.LoadCatalog(dslRoot)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "DSL load error", "details": err.Error()})
			return
		}
		newLangs, err := reference.LoadLanguages(langsFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Languages load error", "details": err.Error()})
			return
		}

		// 2) линтер до замены: текущий реестр остаётся, если есть проблемы
		if issues := newCatalog.Lint(); len(issues) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "registry has blocking issues",
				"issues":  issues,
				"hint":    "fix DSL and retry",
				"dslRoot": dslRoot,
			})
			return
		}

		// 3) атомарная замена под write-lock
		storage.swap(newCatalog, newLangs)
		storage.log.Info("registry reloaded",
			zap.String("dsl_root", dslRoot),
			zap.Int("tables", len(newCatalog)),
			zap.Int("languages", len(newLangs.Items)))

		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"dslRoot":   dslRoot,
			"tables":    len(newCatalog),
			"languages": len(newLangs.Items),
		})
	}
}
