package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"drinkingman/internal/agents"
	"drinkingman/internal/api"
	"drinkingman/internal/catalog"
	"drinkingman/internal/config"
	"drinkingman/internal/database"
	"drinkingman/internal/evaluation"
	"drinkingman/internal/inventory"
	"drinkingman/internal/logging"
	"drinkingman/internal/models/providers"
	"drinkingman/internal/monitoring"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	monitor := monitoring.NewMonitor()

	// Initialize LLM
	provider, err := initializeProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	// Initialize database
	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	bartender := agents.NewBartender(provider, agents.Options{
		Generation: providers.GenerationConfig{
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			TopK:        cfg.LLM.TopK,
			TopP:        cfg.LLM.TopP,
		},
		DescriptionTemperature: cfg.LLM.DescriptionTemperature,
		Timeout:                cfg.LLM.Timeout,
		Monitor:                monitor,
		Evaluator:              evaluation.NewEvaluator(),
	})

	server := api.NewServer(api.Config{
		Bartender: bartender,
		Catalog: catalog.NewService(catalog.Config{
			Dataset:  loadDataset(cfg.Catalog.DatasetPath),
			Source:   catalog.NewClient(cfg.Catalog.LookupURL, cfg.Catalog.Timeout),
			Enricher: bartender,
			Monitor:  monitor,
			PageSize: cfg.Catalog.PageSize,
		}),
		Store:          inventory.NewStore(db, monitor),
		Monitor:        monitor,
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       cfg.Auth.TokenTTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PublicOrigin:   cfg.Server.PublicOrigin,
	})

	// Start metrics server
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg.Metrics, monitor)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logging.Info().Msg("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("API server shutdown")
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logging.Error().Err(err).Msg("metrics server shutdown")
			}
		}

		cancel()
	}()

	logging.Info().
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Environment).
		Str("llm_provider", cfg.LLM.Provider).
		Bool("llm_available", bartender.Available()).
		Msg("starting API server")
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("API server: %w", err)
	}
	return nil
}

// initializeProvider builds the language model provider. A missing credential
// is not fatal: recommendation and enrichment then yield no result.
func initializeProvider(ctx context.Context, cfg config.LLMConfig) (providers.Provider, error) {
	provider, err := providers.New(ctx, cfg)
	if errors.Is(err, providers.ErrMissingCredential) {
		logging.Warn().Str("provider", cfg.Provider).Msg("no language model credential configured, suggestions disabled")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("initialize LLM: %w", err)
	}
	return provider, nil
}

func loadDataset(path string) *catalog.Dataset {
	dataset, err := catalog.LoadDataset(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("bundled dataset unavailable, using lookup service only")
		return catalog.NewDataset(nil)
	}
	logging.Info().Int("records", dataset.Len()).Str("path", path).Msg("bundled dataset loaded")
	return dataset
}

func startMetricsServer(cfg config.MetricsConfig, monitor *monitoring.Monitor) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.GET(cfg.Path, gin.WrapH(promhttp.HandlerFor(monitor.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log := logging.With("metrics")
	go func() {
		log.Info().Int("port", cfg.Port).Str("path", cfg.Path).Msg("starting metrics server")
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	return metricsServer
}
