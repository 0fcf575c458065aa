package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mpilhlt/dhamps-relay/internal/handlers"
	"github.com/mpilhlt/dhamps-relay/internal/llm"
	"github.com/mpilhlt/dhamps-relay/internal/logging"
	"github.com/mpilhlt/dhamps-relay/internal/metrics"
	"github.com/mpilhlt/dhamps-relay/internal/models"
	"github.com/mpilhlt/dhamps-relay/internal/server"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment may be set otherwise.
	_ = godotenv.Load()

	// Create a CLI app
	cli := humacli.New(func(hooks humacli.Hooks, options *models.RelayOptions) {
		log, err := logging.New(options.Debug, options.LogFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "unable to set up logging: %v\n", err)
			os.Exit(1)
		}
		log = log.With(zap.String("service", handlers.ServiceRelay))

		log.Info("starting prompt relay",
			zap.Bool("debug", options.Debug),
			zap.String("host", options.Host),
			zap.Int("port", options.Port),
		)

		apiKey := options.APIKey()
		if apiKey == "" {
			log.Warn("no API key configured, chat completion calls will fail",
				zap.String("env", models.APIKeyEnv))
		}

		completer := llm.NewOpenAIClient(llm.Config{
			APIKey:  apiKey,
			BaseURL: options.OpenAIBaseURL,
			Model:   options.Model,
			Timeout: options.Timeout(),
		})
		log.Info("chat completion client ready",
			zap.String("model", completer.Model()),
			zap.Duration("upstream_timeout", options.Timeout()),
		)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		// Create a new router & API
		router := http.NewServeMux()
		api := server.NewAPI(router, "Prompt Relay API", options.Docs)

		// Add routes to the API
		if err := handlers.AddRelayRoutes(completer, log, m, api); err != nil {
			log.Fatal("unable to add routes", zap.Error(err))
		}
		if options.Metrics {
			router.Handle("GET /metrics", metrics.Handler(reg))
		}

		srv := server.NewHTTPServer(options.Host, options.Port, server.Wrap(router, log, m, handlers.ServiceRelay))
		server.Serve(hooks, srv, log)
	})

	// Run the CLI. When passed no commands, it starts the server.
	cli.Run()
}
