package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mpilhlt/dhamps-relay/internal/handlers"
	"github.com/mpilhlt/dhamps-relay/internal/logging"
	"github.com/mpilhlt/dhamps-relay/internal/metrics"
	"github.com/mpilhlt/dhamps-relay/internal/models"
	"github.com/mpilhlt/dhamps-relay/internal/server"
	"github.com/mpilhlt/dhamps-relay/internal/static"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *models.StaticOptions) {
		log, err := logging.New(options.Debug, options.LogFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to set up logging: %v\n", err)
			os.Exit(1)
		}
		log = log.With(zap.String("service", handlers.ServiceStatic))

		log.Info("starting static asset server",
			zap.String("host", options.Host),
			zap.Int("port", options.Port),
			zap.String("root", options.Root),
			zap.String("index", options.Index),
			zap.String("static_dir", options.StaticDir),
			zap.String("static_prefix", options.StaticPrefix),
		)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		router := http.NewServeMux()

		// Health check only. Docs stay off so they do not shadow SPA routes.
		api := server.NewAPI(router, "Static Asset Server", false)
		if err := handlers.RegisterHealthRoutes(handlers.ServiceStatic, api); err != nil {
			log.Fatal("unable to add routes", zap.Error(err))
		}
		if options.Metrics {
			router.Handle("GET /metrics", metrics.Handler(reg))
		}

		static.New(static.Options{
			Root:         options.Root,
			Index:        options.Index,
			StaticDir:    options.StaticDir,
			StaticPrefix: options.StaticPrefix,
		}, log, m).Register(router)

		srv := server.NewHTTPServer(options.Host, options.Port, server.Wrap(router, log, m, handlers.ServiceStatic))
		server.Serve(hooks, srv, log)
	})

	cli.Run()
}
