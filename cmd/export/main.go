// The export binary materializes the static site: it enumerates the locale
// and variant routes, renders one page per route, and optionally publishes
// the result to object storage. With -every it re-runs on a cron schedule
// so content updates reach the bucket without a manual step.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/pollenlabs/wayfind/internal/config"
	"github.com/pollenlabs/wayfind/internal/export"
	"github.com/pollenlabs/wayfind/pkg/logger"
	"github.com/pollenlabs/wayfind/pkg/routes"
)

func main() {
	var (
		configPath string
		every      string
		skipUpload bool
	)
	flag.StringVar(&configPath, "config", "site.yaml", "site configuration file")
	flag.StringVar(&every, "every", "", "cron spec for scheduled re-export (one-shot when empty)")
	flag.BoolVar(&skipUpload, "skip-upload", false, "export locally without publishing")
	flag.Parse()

	if err := run(configPath, every, skipUpload); err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath, every string, skipUpload bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.NewWithSentry("export", logger.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})

	set, err := cfg.LocaleSet()
	if err != nil {
		return err
	}
	table := routes.NewTable(set, cfg.Variants...)

	exporter := export.New(os.DirFS(cfg.ContentDir),
		export.WithSiteName(cfg.SiteName),
		export.WithLogger(log),
	)

	var publisher *export.S3Publisher
	if !skipUpload && cfg.Publish.Bucket != "" {
		publisher, err = export.NewS3Publisher(export.PublishConfig{
			Bucket:    cfg.Publish.Bucket,
			Region:    cfg.Publish.Region,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			Endpoint:  cfg.Publish.Endpoint,
			PathStyle: cfg.Publish.PathStyle,
			Prefix:    cfg.Publish.Prefix,
		}, log)
		if err != nil {
			return err
		}
	}

	pipeline := func(ctx context.Context) error {
		if err := exporter.Export(ctx, table, cfg.OutputDir); err != nil {
			return err
		}
		if publisher != nil {
			return publisher.Publish(ctx, cfg.OutputDir)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if every == "" {
		return pipeline(ctx)
	}

	c := cron.New()
	_, err = c.AddFunc(every, func() {
		if err := pipeline(ctx); err != nil {
			log.Error("scheduled export failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}

	// Run once up front so the bucket is never empty until the first tick.
	if err := pipeline(ctx); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	cronCtx := c.Stop()
	<-cronCtx.Done()
	return nil
}
