package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eskimo/internal/config"
	"eskimo/internal/infra"
	"eskimo/internal/middleware"
	"eskimo/internal/repository"
	"eskimo/internal/router"
	"eskimo/internal/service"
	"eskimo/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.BillingSecret == "" {
		log.Warn().Msg("BILLING_SECRET is empty; activation codes will be rejected")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First boot starts the trial period.
	suscripcionRepo := repository.NewSuscripcionRepository(db)
	if err := suscripcionRepo.EnsureTrial(ctx, cfg.BillingTrialDays, time.Now()); err != nil {
		log.Fatal().Err(err).Msg("failed to initialise subscription")
	}

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	smtpCB := infra.NewCircuitBreaker(infra.SMTPBreakerConfig())
	mailer := infra.NewMailer(cfg)
	if !mailer.Configurado() {
		log.Warn().Msg("SMTP_HOST is empty; e-mail jobs will be dropped")
	}
	dispatcher := worker.NewDispatcher(rdb)
	ventaRepo := repository.NewVentaRepository(db)
	negocioRepo := repository.NewNegocioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	reporteSvc := service.NewReporteService(ventaRepo, negocioRepo, dispatcher, cfg.BusinessName)

	handlers := map[string]worker.Handler{
		worker.JobReporte: worker.NewReporteWorker(reporteSvc, dispatcher, cfg.ReportStoragePath).Process,
		worker.JobEmail:   worker.NewEmailWorker(mailer, smtpCB).Process,
	}
	workers := worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	worker.StartStockAlertCron(ctx, worker.StockAlertConfig{
		Productos:    productoRepo,
		RDB:          rdb,
		Dispatcher:   dispatcher,
		Umbral:       cfg.StockAlertThreshold,
		Intervalo:    time.Duration(cfg.StockAlertIntervalMinutes) * time.Minute,
		Destinatario: cfg.AlertEmail,
	})
	middleware.StartRateLimiterPurge(ctx)

	r := router.New(cfg, db, rdb, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("eskimo backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	workers.Wait()
	_ = rdb.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
