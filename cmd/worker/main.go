package main

import (
	"os"
	"time"

	"translation-backend/internal/config"
	"translation-backend/internal/database"
	"translation-backend/internal/repository"
	"translation-backend/internal/services"
	"translation-backend/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	config.LoadEnvFile()
	cfg := config.Load()
	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.Export.Root, 0o755); err != nil {
		log.Fatalf("Failed to create export root %s: %v", cfg.Export.Root, err)
	}

	var mirror services.ArtifactMirror
	if cfg.MinIO.Enabled {
		minioService, err := services.NewMinIOService(&cfg.MinIO, log)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		mirror = minioService
	}

	redis := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	client := asynq.NewClient(redis)
	defer client.Close()

	projectRepo := repository.NewProjectRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	exportRepo := repository.NewExportRepository(db)

	exportService := services.NewExportService(projectRepo, langRepo, translationRepo, fs, cfg.Export, log)
	jobService := services.NewExportJobService(exportRepo, projectRepo, exportService, tasks.NewClient(client, log), mirror, fs, cfg.Export, log)
	retentionService := services.NewRetentionService(exportRepo, mirror, fs, cfg.Export, log)

	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: cfg.Export.Concurrency,
		Queues: map[string]int{
			tasks.QueueExports: 6,
			"default":          1,
		},
		Logger:   log,
		LogLevel: asynq.InfoLevel,
	})

	mux := asynq.NewServeMux()
	tasks.NewHandlers(jobService, retentionService, log).Register(mux)

	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   log,
	})
	entryID, err := scheduler.Register(cfg.Export.SweepCron, tasks.NewSweepTask(), asynq.Unique(time.Hour))
	if err != nil {
		log.Fatalf("Failed to schedule retention sweep: %v", err)
	}
	log.WithFields(logrus.Fields{
		"entry_id":  entryID,
		"cron":      cfg.Export.SweepCron,
		"retention": cfg.Export.Retention,
	}).Info("Retention sweep scheduled")

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	log.WithField("concurrency", cfg.Export.Concurrency).Info("Export worker starting")
	// Run blocks until SIGTERM or SIGINT
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
