// Package main is the entry point for the motivationd daemon: the HTTP API
// plus the reminder scheduler over a shared quote store.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/malcomkamau/motivation"
	"github.com/malcomkamau/motivation/api"
	"github.com/malcomkamau/motivation/cache"
	"github.com/malcomkamau/motivation/encryption"
	"github.com/malcomkamau/motivation/kv"
	"github.com/malcomkamau/motivation/reminder"
	"github.com/malcomkamau/motivation/source"
)

func main() {
	listenAddr := flag.String("listen-addr", ":8080", "HTTP listen address")
	storageKind := flag.String("storage", "sqlite", "storage backend: memory, sqlite or postgres")
	sqlitePath := flag.String("sqlite-path", "motivation.db", "path to the SQLite database file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	redisAddr := flag.String("redis-addr", "", "Redis address for caching (empty uses in-memory cache)")
	redisPassword := flag.String("redis-password", "", "Redis password")
	redisDB := flag.Int("redis-db", 0, "Redis database number")
	webhookURL := flag.String("webhook-url", "", "webhook URL for reminder delivery (empty logs reminders)")
	logFile := flag.String("log-file", "", "log file path with rotation (empty logs to stderr)")
	debug := flag.Bool("debug", false, "enable debug logging")
	seedURL := flag.String("seed-url", "", "quote API base URL to seed the library from on startup")
	seedCategory := flag.String("seed-category", "", "category tag to restrict seeding to")
	seedPages := flag.Int("seed-pages", 5, "maximum quote API pages to fetch when seeding")
	encryptBackups := flag.Bool("encrypt-backups", false, "encrypt backup exports with the key from "+encryption.EnvKeyName)
	flag.Parse()

	var logger motivation.Logger
	if *logFile != "" {
		logger = motivation.NewFileLogger(*logFile)
	} else {
		logger = motivation.NewDefaultLogger()
	}
	if *debug {
		logger.SetLevel(motivation.LogLevelDebug)
	}
	logger.Info("motivationd starting up...")

	store, err := openStore(*storageKind, *sqlitePath, *postgresDSN)
	if err != nil {
		logger.Error("Failed to open storage", "backend", *storageKind, "error", err)
		os.Exit(1)
	}

	var cacher motivation.Cache
	if *redisAddr != "" {
		rc, err := cache.NewRedisCache(*redisAddr, *redisPassword, *redisDB)
		if err != nil {
			logger.Error("Failed to connect to redis", "addr", *redisAddr, "error", err)
			os.Exit(1)
		}
		cacher = rc
	} else {
		cacher = cache.NewMemoryCache()
	}

	opts := []motivation.Option{
		motivation.WithStore(store),
		motivation.WithCache(cacher),
		motivation.WithLogger(logger),
	}
	if *encryptBackups {
		cipher, err := encryption.NewFromEnv()
		if err != nil {
			logger.Error("Failed to initialize backup encryption", "error", err)
			os.Exit(1)
		}
		opts = append(opts, motivation.WithCipher(cipher))
	}
	mgr := motivation.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seedURL != "" {
		client := source.NewClient(*seedURL, nil)
		n, err := client.Seed(ctx, mgr, *seedCategory, *seedPages)
		if err != nil {
			logger.Error("Failed to seed quote library", "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded quote library", "quotes", n)
	}

	schedOpts := []reminder.SchedulerOption{reminder.WithLogger(logger)}
	if *webhookURL != "" {
		schedOpts = append(schedOpts, reminder.WithNotifier(reminder.NewWebhookNotifier(*webhookURL, nil)))
	}
	sched := reminder.NewScheduler(mgr, schedOpts...)

	if err := sched.Restore(ctx); err != nil {
		logger.Error("Failed to restore reminder schedules", "error", err)
		os.Exit(1)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddress: *listenAddr,
		Manager:       mgr,
		Scheduler:     sched,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("Failed to create API server", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Start()
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return apiServer.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Daemon exited with error", "error", err)
	}

	if err := cacher.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
	}
	if err := mgr.Close(); err != nil {
		logger.Error("Failed to close storage", "error", err)
	}

	logger.Info("motivationd exited gracefully")
}

// openStore picks the storage backend from the flag set.
func openStore(kind, sqlitePath, postgresDSN string) (motivation.Store, error) {
	switch kind {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "sqlite":
		return kv.NewSQLiteStore(sqlitePath)
	case "postgres":
		return kv.NewPostgresStore(postgresDSN)
	default:
		return nil, errors.New("unknown storage backend: " + kind)
	}
}
