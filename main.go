package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"getloanoffer/chart"
	"getloanoffer/config"
	httpLayer "getloanoffer/http"
	"getloanoffer/logger"
	"getloanoffer/repository"
	"getloanoffer/service"
)

func main() {
	cfg := config.Load()

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("invalid LOG_LEVEL, using INFO", "value", cfg.LogLevel)
	}
	logger.SetLevel(level)

	cache, closeCache := newCache(cfg)
	defer closeCache()

	leadRepo, closeLeads, err := newLeadRepository(cfg)
	if err != nil {
		logger.Fatal("failed to open lead store", "store", cfg.LeadStore, "error", err)
	}
	defer closeLeads()

	var sink repository.LeadSink
	if cfg.SheetWebhookURL != "" {
		sink = repository.NewSheetWebhook(cfg.SheetWebhookURL, cfg.WebhookTimeout)
		logger.Info("forwarding leads to sheet webhook")
	}

	loanService := service.NewLoanService(
		repository.NewLoanRepositoryMemory(repository.DefaultHistorySize),
		cache,
		cfg.CacheTTL,
	)
	leadService := service.NewLeadService(leadRepo, sink)
	formatter := service.Formatter{
		Symbol:   cfg.CurrencySymbol,
		Grouping: service.ParseGrouping(cfg.NumberGrouping),
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		EMI: httpLayer.NewEMIHandler(
			loanService,
			service.NewTenureService(),
			formatter,
			chart.DefaultSVGRenderer(),
		),
		Lead: httpLayer.NewLeadHandler(leadService),
		Site: httpLayer.NewSiteHandler(os.DirFS(cfg.StaticDir)),
	}, rateLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "static_dir", cfg.StaticDir, "lead_store", cfg.LeadStore)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("error starting server", "error", err)
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newCache prefers Redis and falls back to the in-process cache when Redis is
// not configured or not reachable.
func newCache(cfg *config.Config) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	logger.Info("using redis cache", "addr", cfg.RedisAddr)
	return redisCache, func() { closeQuietly("redis", redisCache) }
}

func newLeadRepository(cfg *config.Config) (repository.LeadRepository, func(), error) {
	switch cfg.LeadStore {
	case config.LeadStoreMemory:
		return repository.NewLeadRepositoryMemory(), func() {}, nil
	case config.LeadStorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewLeadRepositorySQL(db), func() { closeQuietly("postgres", db) }, nil
	default:
		if cfg.LeadStore != config.LeadStoreFile {
			logger.Warn("unknown LEAD_STORE, using file store", "value", cfg.LeadStore)
		}
		return repository.NewLeadRepositoryFile(cfg.LeadsJSON, cfg.LeadsCSV), func() {}, nil
	}
}

func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close", "resource", name, "error", err)
	}
}
