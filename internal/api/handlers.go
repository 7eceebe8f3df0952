package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pingcap/errors"

	"overlays/internal/overlay"
)

// listRequest — общая часть листинга и подсчёта: таблица, параметры, контекст, условия.
type listRequest struct {
	table string
	lp    ListParams
	rc    overlay.Context
	svc   *overlay.Service
}

// prepareList разбирает запрос; при ошибке ответ уже записан (или лежит в c.Errors).
func prepareList(c *gin.Context, storage *Storage) (*listRequest, bool) {
	table, ok := storage.NormalizeTableName(c.Param("table"))
	if !ok {
		_ = c.Error(ErrTableNotFound.GenWithStackByArgs(c.Param("table")))
		return nil, false
	}

	lp, errs := parseListParams(c.Request.URL.Query())
	_, langs := storage.snapshot()
	rc, rcErrs := requestContext(lp, langs, storage.opts.DefaultMode)
	errs = append(errs, rcErrs...)

	if len(lp.Fields) > 0 || len(lp.Sort) > 0 || len(lp.Filters) > 0 {
		cols, err := storage.exec.DescribeColumns(c.Request.Context(), table)
		if err != nil {
			_ = c.Error(err)
			return nil, false
		}
		errs = append(errs, validateColumns(lp, cols)...)
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return nil, false
	}
	return &listRequest{table: table, lp: lp, rc: rc, svc: storage.Service()}, true
}

// GET /api/records/:table
func ListHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := prepareList(c, storage)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		total, err := countRecords(c, storage, req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		recs, err := req.svc.GetAllRecordsForTable(ctx, overlay.Selection{
			Fields:  req.lp.selectFields(req.table),
			Table:   req.table,
			Where:   req.lp.where(req.table),
			OrderBy: req.lp.orderBy(req.table),
			Limit:   req.lp.Limit,
			Offset:  req.lp.Offset,
		}, req.rc)
		if err != nil {
			_ = c.Error(errors.Trace(err))
			return
		}
		if recs == nil {
			recs = []*overlay.Record{}
		}

		// total — число строк базового запроса (до наложения и пагинации)
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, recs)
	}
}

// GET /api/records/:table/_count
func CountHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := prepareList(c, storage)
		if !ok {
			return
		}
		total, err := countRecords(c, storage, req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	}
}

// countRecords считает строки базового запроса с теми же условиями языка и видимости.
func countRecords(c *gin.Context, storage *Storage, req *listRequest) (int64, error) {
	where := joinWhere(
		req.lp.where(req.table),
		req.svc.LanguageCondition(req.table, req.rc),
		req.svc.EnableFieldsCondition(req.table, req.rc, false, nil),
	)
	rows, err := storage.exec.Select(c.Request.Context(), overlay.Query{
		Fields: "count(*) AS total",
		Table:  req.table,
		Where:  where,
	})
	if err != nil {
		return 0, errors.Trace(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, _ := rows[0].Int("total")
	return n, nil
}

// GET /api/records/:table/overlays?uids=1,2&L=2
// Сырые переводы: uid -> pid -> запись (для таблицы переводов pid — uid страницы-оригинала).
func OverlaysHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, ok := storage.NormalizeTableName(c.Param("table"))
		if !ok {
			_ = c.Error(ErrTableNotFound.GenWithStackByArgs(c.Param("table")))
			return
		}
		lp, errs := parseListParams(c.Request.URL.Query())
		_, langs := storage.snapshot()
		rc, rcErrs := requestContext(lp, langs, storage.opts.DefaultMode)
		errs = append(errs, rcErrs...)

		uids, err := parseIDs(c.Query("uids"))
		if err != nil {
			errs = append(errs, ferr(ErrBadValue, "uids", err.Error()))
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		ix, err := storage.Service().FetchOverlays(c.Request.Context(), table, uids, rc)
		if err != nil {
			if overlay.IsSkip(err) {
				c.JSON(http.StatusUnprocessableEntity, NewHTTPError(err))
				return
			}
			_ = c.Error(errors.Trace(err))
			return
		}
		c.JSON(http.StatusOK, ix)
	}
}
