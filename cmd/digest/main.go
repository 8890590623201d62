// Command digest emails upcoming SpaceX launches from a launch site.
//
// By default it sends one digest and exits. With -schedule it stays running
// and sends on DIGEST_SCHEDULE until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/launchdigest/internal/config"
	"github.com/dmitrymomot/launchdigest/pkg/cache"
	"github.com/dmitrymomot/launchdigest/pkg/digest"
	"github.com/dmitrymomot/launchdigest/pkg/digest/templates"
	"github.com/dmitrymomot/launchdigest/pkg/job"
	"github.com/dmitrymomot/launchdigest/pkg/launch"
	"github.com/dmitrymomot/launchdigest/pkg/logger"
	"github.com/dmitrymomot/launchdigest/pkg/mailer"
	"github.com/dmitrymomot/launchdigest/pkg/mailer/resend"
	"github.com/dmitrymomot/launchdigest/pkg/mailer/smtp"
	"github.com/dmitrymomot/launchdigest/pkg/redis"
)

const (
	shutdownTimeout = 10 * time.Second
	flushTimeout    = 2 * time.Second
	cachePrefix     = "launchdigest"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, config.Load)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		os.Exit(1)
	}
}

type flags struct {
	schedule   bool
	runOnStart bool
	dryRun     bool
}

func parseFlags(args []string, output io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&f.schedule, "schedule", false, "keep running and send on DIGEST_SCHEDULE")
	fs.BoolVar(&f.runOnStart, "run-on-start", false, "with -schedule, also send once at startup")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print the digest to stdout instead of sending it (mail provider settings are still required)")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if fs.NArg() > 0 {
		return flags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// run wires the job and executes it. Every returned error maps to exit code 1.
func run(ctx context.Context, args []string, stdout io.Writer, load func() (*config.Config, error)) (err error) {
	f, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	cfg, err := load()
	if err != nil {
		logger.New(logger.Config{}).Error("invalid configuration", slog.Any("error", err))
		return err
	}

	log := logger.NewWithSentry(cfg.Logger, cfg.Sentry, logger.RunIDExtractor).
		With(slog.String("app", "launchdigest"))
	defer logger.Flush(flushTimeout)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var shutdownHooks []func(context.Context) error
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		for _, hook := range shutdownHooks {
			if hookErr := hook(shutdownCtx); hookErr != nil {
				log.Error("shutdown hook failed", slog.Any("error", hookErr))
				err = errors.Join(err, hookErr)
			}
		}
	}()

	pads, closePads := newPadCache(ctx, cfg, log)
	shutdownHooks = append(shutdownHooks, closePads)

	service := newService(cfg, log, pads, newSender(cfg, stdout, f.dryRun))

	if f.schedule {
		return runScheduled(ctx, cfg, log, service, f.runOnStart)
	}
	return runOnce(ctx, cfg, log, service)
}

func runOnce(ctx context.Context, cfg *config.Config, log *slog.Logger, service *digest.Service) error {
	ctx = logger.WithRunID(ctx)
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	res, err := service.Run(ctx)
	if err != nil {
		log.ErrorContext(ctx, "digest failed", slog.Any("error", err))
		return err
	}
	log.InfoContext(ctx, "digest finished",
		slog.Int("launches", res.Launches),
		slog.Bool("sent", res.Sent),
	)
	return nil
}

func runScheduled(ctx context.Context, cfg *config.Config, log *slog.Logger, service *digest.Service, runOnStart bool) error {
	manager, err := job.NewManager(
		job.WithScheduledTask(digest.NewTask(service, cfg.Digest.Schedule, cfg.RunTimeout)),
		job.WithLocation(time.UTC),
		job.WithLogger(log),
	)
	if err != nil {
		log.Error("failed to create job manager", slog.Any("error", err))
		return err
	}

	if runOnStart {
		// Failures are logged by the manager; the daemon keeps its schedule.
		_ = manager.RunNow(ctx, digest.TaskName)
	}

	log.Info("digest scheduler started", slog.String("schedule", cfg.Digest.Schedule))
	return manager.Run(ctx)
}

func newService(cfg *config.Config, log *slog.Logger, pads cache.Cache[[]string], sender mailer.Sender) *digest.Service {
	client := launch.NewHTTPClient(cfg.HTTPTimeout)

	spacex := launch.NewSpaceX(launch.SpaceXConfig{
		BaseURL: cfg.SpaceXURL,
		Site:    cfg.Digest.Site,
		PadTTL:  cfg.PadCacheTTL,
	}, launch.WithSpaceXClient(client), launch.WithPadCache(pads))

	launchLibrary := launch.NewLaunchLibrary(launch.LaunchLibraryConfig{
		BaseURL: cfg.LaunchLibraryURL,
		Site:    cfg.Digest.Site,
	}, client)

	m := mailer.New(sender, mailer.NewRenderer(templates.FS), cfg.Mailer)

	return digest.NewService(launch.NewFallback(log, spacex, launchLibrary), m, digest.Config{
		Location:  cfg.Location(),
		To:        cfg.DestEmail,
		Site:      cfg.Digest.Site,
		Horizon:   cfg.Digest.Horizon,
		SkipEmpty: cfg.Digest.SkipEmpty,
	}, digest.WithLogger(log))
}

func newSender(cfg *config.Config, stdout io.Writer, dryRun bool) mailer.Sender {
	switch {
	case dryRun:
		return mailer.NewWriterSender(stdout, cfg.FromAddress())
	case cfg.Provider == config.ProviderResend:
		return resend.New(cfg.Resend)
	default:
		return smtp.New(cfg.SMTP)
	}
}

// newPadCache returns a Redis-backed pad cache when REDIS_URL is set and
// reachable, and an in-process cache otherwise.
func newPadCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache.Cache[[]string], func(context.Context) error) {
	memory := func() (cache.Cache[[]string], func(context.Context) error) {
		c := cache.NewMemory[[]string](cache.WithDefaultTTL(cfg.PadCacheTTL))
		return c, func(context.Context) error { return c.Close() }
	}
	if cfg.RedisURL == "" {
		return memory()
	}

	client, err := redis.Open(ctx, cfg.RedisURL,
		redis.WithPoolSize(2),
		redis.WithRetry(2, 500*time.Millisecond),
	)
	if err != nil {
		log.Warn("redis unavailable, using in-memory pad cache", slog.Any("error", err))
		return memory()
	}

	c := cache.NewRedis[[]string](client, nil,
		cache.WithPrefix(cachePrefix),
		cache.WithRedisDefaultTTL(cfg.PadCacheTTL),
	)
	return c, func(context.Context) error { return client.Close() }
}
