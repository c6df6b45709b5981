package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gascert_backend/internal/adapters"
	"gascert_backend/internal/adapters/storage"
	"gascert_backend/internal/certificates"
	"gascert_backend/internal/clients"
	"gascert_backend/internal/email"
	"gascert_backend/platform/events"
	apphttp "gascert_backend/internal/http"
	"gascert_backend/internal/http/router"
	"gascert_backend/internal/jobs"
	jobsvc "gascert_backend/internal/jobs/service"
	"gascert_backend/internal/notification"
	"gascert_backend/internal/pdf"
	"gascert_backend/internal/scheduler"
	"gascert_backend/platform/config"
	"gascert_backend/platform/db"
	"gascert_backend/platform/logger"
	"gascert_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.ObjectStorage, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for certificate PDFs, photos, and signatures
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "certificates", cfg.GetMinioBucketCertificates())
	ensureBucket(ctx, log, storageSvc, "job-photos", cfg.GetMinioBucketJobPhotos())
	ensureBucket(ctx, log, storageSvc, "signatures", cfg.GetMinioBucketSignatures())
	log.Info(
		"storage service initialized",
		"certificatesBucket", cfg.GetMinioBucketCertificates(),
		"jobPhotosBucket", cfg.GetMinioBucketJobPhotos(),
		"signaturesBucket", cfg.GetMinioBucketSignatures(),
	)

	if !cfg.IsGotenbergEnabled() {
		log.Error("GOTENBERG_URL is required for certificate rendering")
		panic("GOTENBERG_URL is required for certificate rendering")
	}
	gotenberg := pdf.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
	renderer := pdf.NewRenderer(gotenberg)
	log.Info("gotenberg PDF renderer initialized", "url", cfg.GetGotenbergURL())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(sender, storageSvc, cfg.GetMinioBucketCertificates(), log)
	notificationModule.Subscribe(eventBus)

	clientsModule := clients.NewModule(pool, val)
	jobsModule := jobs.NewModule(pool, val)
	jobsModule.Service().SetEventBus(eventBus)
	jobsModule.Service().SetObjectStore(adapters.NewJobFileStore(storageSvc), jobsvc.Buckets{
		Photos:     cfg.GetMinioBucketJobPhotos(),
		Signatures: cfg.GetMinioBucketSignatures(),
	})
	if reminderScheduler != nil {
		jobsModule.Service().SetReminderScheduler(reminderScheduler)
	}

	// Job context resolution goes through the registry merge
	jobsModule.Service().SetClientResolver(adapters.NewClientViewResolver(clientsModule.Service()))

	certificatesModule := certificates.NewModule(
		pool,
		val,
		adapters.NewCertificateJobGateway(jobsModule.Service()),
		renderer,
		adapters.NewCertificateFileStore(storageSvc),
		cfg.GetMinioBucketCertificates(),
		log,
	)
	certificatesModule.Service().SetEventBus(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			clientsModule,
			jobsModule,
			certificatesModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; job reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
