package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"kate-klips/internal/config"
	"kate-klips/internal/forward"
	"kate-klips/internal/logging"
	"kate-klips/internal/observability"
	"kate-klips/internal/relay"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// main is the entry point for the ForwarderService.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// Init also installs the logger as the slog default.
	logger, err := logging.Init(cfg.Log)
	if err != nil {
		log.Fatalf("Could not set up logging: %v", err)
	}

	// One SDK client per vendor, shared by every route that uses it.
	clients := make(map[string]forward.CompletionClient, len(cfg.Vendors))
	for name, vendor := range cfg.Vendors {
		clients[name] = forward.NewOpenAIClient(vendor)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(relay.Middleware)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ForwarderService OK"))
	})
	r.Handle("/metrics", observability.Handler())

	// Inject the vendor client into a service per route, and the service into its handler.
	for _, rc := range cfg.Routes {
		service := forward.NewService(clients[rc.Vendor], rc.Vendor, rc.Model, logger)
		handler := forward.NewHandler(service, forward.Route{
			Path:        rc.Path,
			Stream:      rc.Stream,
			AllowOrigin: cfg.Server.AllowOrigin,
		}, logger)
		handler.RegisterRoutes(r)

		logger.Info("route registered",
			"path", rc.Path,
			"vendor", rc.Vendor,
			"model", rc.Model,
			"stream", rc.Stream,
		)
	}

	logger.Info("ForwarderService starting", "port", cfg.Server.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), r); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}
