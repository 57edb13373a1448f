package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/recipe-search/api"
	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/internal/analytics"
	"github.com/gcbaptista/recipe-search/internal/cache"
	"github.com/gcbaptista/recipe-search/internal/engine"
	"github.com/gcbaptista/recipe-search/internal/loader"
	"github.com/gcbaptista/recipe-search/internal/logger"
	"github.com/gcbaptista/recipe-search/internal/metrics"
)

const version = "1.0.0"

func main() {
	var (
		help        = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		configPath  = flag.String("config", "", "Path to a YAML configuration file")
		port        = flag.Int("port", 0, "Port to run the server on (overrides the configuration)")
	)
	flag.Parse()

	if *help {
		fmt.Printf("Recipe Search - in-memory full-text search over recipes\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s --config config.yaml     # Start with a configuration file\n", os.Args[0])
		fmt.Printf("  RS_RECIPE_PATHS=./data %s   # Load every JSON file in ./data\n", os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Recipe Search v%s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("main")
	gin.SetMode(gin.ReleaseMode)

	var prom *metrics.Metrics
	if cfg.Metrics.Enabled {
		prom = metrics.New()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := loader.NewFileSource(cfg.Data.RecipePaths...)
	recipes, err := source.LoadRecipes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}

	searchEngine, err := engine.NewEngine(recipes, engine.Options{
		Metrics:    prom,
		JobWorkers: cfg.Jobs.MaxWorkers,
	})
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	defer searchEngine.Close()

	var queryCache *cache.QueryCache
	if cfg.Redis.CacheEnabled() {
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			// Searching works without the cache.
			log.Warn("redis unavailable, result cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer store.Close()
			queryCache = cache.New(store, cfg.Redis.CacheTTL, prom)
			// Generations restart at 1, so results cached by an earlier process would be served as current.
			if err := queryCache.Invalidate(ctx); err != nil {
				log.Warn("failed to clear result cache", "error", err)
			}
		}
	}

	analyticsService := analytics.NewService(searchEngine, cfg.Data.AnalyticsFile)
	defer func() {
		if err := analyticsService.Save(); err != nil {
			log.Error("failed to save analytics", "error", err)
		}
	}()

	apiHandler := api.NewAPI(api.Dependencies{
		Engine:    searchEngine,
		Source:    source,
		Analytics: analyticsService,
		Cache:     queryCache,
		Metrics:   prom,
		Search:    cfg.Search,
	})
	router := api.NewRouter(apiHandler, cfg.Server.MaxBodyBytes, cfg.Metrics.Path)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server",
			"port", cfg.Server.Port,
			"recipes", len(recipes),
			"cache", queryCache != nil,
			"metrics", prom != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
