package api

import (
	"net/http"

	"github.com/pingcap/errors"
)

var ErrTableNotFound = errors.Normalize(
	"table %s is not registered",
	errors.RFCCodeText("OVL:ErrTableNotFound"),
)

// HTTPError — тело ответа при ошибке
type HTTPError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func NewHTTPError(err error) HTTPError {
	code, _ := rfcCode(err)
	return HTTPError{Error: err.Error(), Code: string(code)}
}

func rfcCode(err error) (errors.RFCErrorCode, bool) {
	if e, ok := errors.Cause(err).(*errors.Error); ok {
		return e.RFCCode(), true
	}
	return "", false
}

// statusOf: неизвестная таблица -> 404, остальное (хранилище) -> 500
func statusOf(err error) int {
	if ErrTableNotFound.Equal(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
