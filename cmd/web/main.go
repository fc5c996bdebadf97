// The web binary serves the exported site: the unlocalized root redirect,
// the pre-built locale and variant pages, and the share card endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pollenlabs/wayfind/internal/config"
	"github.com/pollenlabs/wayfind/internal/handlers"
	"github.com/pollenlabs/wayfind/internal/middleware"
	"github.com/pollenlabs/wayfind/pkg/cookie"
	"github.com/pollenlabs/wayfind/pkg/logger"
	"github.com/pollenlabs/wayfind/pkg/redirect"
	"github.com/pollenlabs/wayfind/pkg/routes"
	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var (
		configPath string
		addr       string
	)
	flag.StringVar(&configPath, "config", "site.yaml", "site configuration file")
	flag.StringVar(&addr, "addr", ":8080", "HTTP listen address")
	flag.Parse()

	if err := run(configPath, addr); err != nil {
		slog.Error("web server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.NewWithSentry("web", logger.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	}, middleware.RequestIDExtractor())

	set, err := cfg.LocaleSet()
	if err != nil {
		return err
	}
	table := routes.NewTable(set, cfg.Variants...)

	source, cleanup, err := buildSource(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	resolver := sharecard.NewResolver(source,
		sharecard.WithBaseURL(cfg.BaseURL),
		sharecard.WithSiteName(cfg.SiteName),
		sharecard.WithFallbackDescription(cfg.Description),
		sharecard.WithLogger(log),
	)

	orchOpts := []redirect.Option{redirect.WithLogger(log)}
	if cfg.Delay > 0 {
		orchOpts = append(orchOpts, redirect.WithDelay(cfg.Delay))
	}

	router := handlers.NewRouter(handlers.Deps{
		Orchestrator: redirect.New(set, orchOpts...),
		Cookies:      cookie.New(cookie.WithSecure(cfg.Environment == "production")),
		Table:        table,
		Pages:        os.DirFS(cfg.OutputDir),
		Resolver:     resolver,
		ImageBase:    cfg.ImageBase,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("web server listening",
			slog.String("addr", addr),
			slog.Any("locales", set.Codes()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildSource picks the share record source: the share database when a URL
// is configured, the share HTTP API otherwise, with an optional Redis
// read-through cache on top.
func buildSource(cfg config.Site, log *slog.Logger) (sharecard.Source, func(), error) {
	cleanup := func() {}

	var source sharecard.Source
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		source = sharecard.NewPostgresSource(pool)
		cleanup = pool.Close
	} else {
		source = sharecard.NewHTTPSource(cfg.ShareAPI)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		inner := cleanup
		cleanup = func() {
			_ = rdb.Close()
			inner()
		}
		source = sharecard.NewCachedSource(source, rdb, sharecard.WithCacheLogger(log))
	}

	return source, cleanup, nil
}
