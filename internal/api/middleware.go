package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"overlays/internal/logging"
)

const (
	// HeaderRequestID — входящий id сохраняется, иначе генерируется ULID
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestIDMiddleware проставляет id запроса в контекст gin и в ответ.
func RequestIDMiddleware(ids *logging.IDSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = ids.New()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// LogMiddleware logs the api requests
func LogMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		c.Next()

		cost := time.Since(start)

		var stdErr error
		if err := c.Errors.Last(); err != nil {
			stdErr = err.Err
		}
		log.Info("api request",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Error(stdErr),
			zap.Duration("duration", cost),
		)
	}
}

// ErrorHandleMiddleware puts the error into response
func ErrorHandleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		// обработчик возвращается сразу после c.Error, так что ошибка одна
		lastError := c.Errors.Last()
		if lastError == nil || c.Writer.Written() {
			return
		}
		c.JSON(statusOf(lastError.Err), NewHTTPError(lastError.Err))
		c.Abort()
	}
}

// timeoutMiddleware wraps the request context with a timeout
func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer func() {
			if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
				c.Writer.WriteHeader(http.StatusGatewayTimeout)
				c.Abort()
			}
			cancel()
		}()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
