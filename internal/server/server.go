package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds the graceful shutdown in OnStop.
const ShutdownTimeout = 5 * time.Second

// NewHTTPServer creates the server for host:port.
func NewHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve hooks server into the CLI lifecycle: OnStart blocks in
// ListenAndServe, OnStop shuts the server down gracefully.
func Serve(hooks humacli.Hooks, server *http.Server, log *zap.Logger) {
	hooks.OnStart(func() {
		log.Info("starting server", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen error", zap.String("addr", server.Addr), zap.Error(err))
			return
		}
		log.Info("server stopped", zap.String("addr", server.Addr))
	})

	hooks.OnStop(func() {
		log.Info("shutting down server", zap.String("addr", server.Addr))

		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
		_ = log.Sync()
	})
}
