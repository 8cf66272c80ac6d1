package main

import (
	"time"

	"github.com/hibiken/asynq"

	"ketotrack/internal/auth"
	"ketotrack/internal/cache"
	"ketotrack/internal/config"
	"ketotrack/internal/db"
	"ketotrack/internal/logging"
	"ketotrack/internal/mail"
	"ketotrack/internal/report"
	"ketotrack/internal/repository"
	"ketotrack/internal/tasks"
)

// tokenRotationSchedule fires the rotation task every 30 days.
const tokenRotationSchedule = "@every 720h"

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokenStore := auth.NewTokenStore(cacheClient)

	profileRepo := repository.NewProfileRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	generator := report.NewGenerator()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			tasks.QueueReports: 6,
			tasks.QueueDefault: 4,
		},
	})

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeReportDispatch, tasks.NewReportDispatchHandler(profileRepo, productRepo, generator, mailer, logger))
	mux.Handle(tasks.TypeTokenRotate, tasks.NewTokenRotationHandler(tokenRepo, tokenStore, logger))

	// The scheduler owns the rotation cadence; the task body holds no
	// timer state of its own.
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(tokenRotationSchedule, tasks.NewTokenRotateTask()); err != nil {
		logger.Fatalf("register rotation schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Fatalf("scheduler: %v", err)
		}
	}()

	logger.WithField("concurrency", cfg.WorkerConcurrency).Info("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatalf("worker: %v", err)
	}
}
