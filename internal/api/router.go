// api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"overlays/internal/logging"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func NewRouter(storage *Storage) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestIDMiddleware(logging.NewIDSource()),
		LogMiddleware(storage.log),
		ErrorHandleMiddleware(),
		timeoutMiddleware(requestTimeout),
	)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/meta", MetaListHandler(storage))
		apiGroup.GET("/meta/:table", MetaTableHandler(storage))
		apiGroup.GET("/languages", LanguagesHandler(storage))

		// статические "служебные" маршруты
		apiGroup.GET("/records/:table/_count", CountHandler(storage))
		apiGroup.GET("/records/:table/overlays", OverlaysHandler(storage))
		apiGroup.GET("/records/:table", ListHandler(storage))

		apiGroup.POST("/admin/reload", AdminReloadHandler(storage))
	}
	return r
}

// RunServer обслуживает запросы до отмены ctx, затем штатно останавливает сервер.
func RunServer(ctx context.Context, addr string, storage *Storage) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(storage),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		storage.log.Info("http server started", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	storage.log.Info("http server stopping")
	return srv.Shutdown(shutdownCtx)
}
