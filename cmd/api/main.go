package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digibank/backend/internal/api"
	"github.com/digibank/backend/internal/auth"
	"github.com/digibank/backend/internal/config"
	"github.com/digibank/backend/internal/db"
	"github.com/digibank/backend/internal/logger"
	"github.com/digibank/backend/internal/metrics"
	"github.com/digibank/backend/internal/middleware"
	"github.com/digibank/backend/internal/notify"
	"github.com/digibank/backend/internal/repository/postgres"
	"github.com/digibank/backend/internal/services"
	"github.com/digibank/backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)

	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	notifier := notify.NewQueue(repos.WebhookJobs, cfg.WebhookURL)
	poller := notify.NewPoller(repos.WebhookJobs, wp, 5*time.Second)
	poller.Start(ctx)

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer,
		15*time.Minute, 7*24*time.Hour)

	metrics.Init()

	deps := api.Deps{
		Cfg:       cfg,
		Auth:      middleware.NewAuthMiddleware(tm),
		Users:     services.NewUserService(repos.Users, repos.Accounts, tm, repos.AuditLogs),
		Accounts:  services.NewAccountService(repos.Accounts, repos.Txns, repos.AuditLogs),
		Transfers: services.NewTransferService(repos.Transfers, repos.Accounts, repos.AuditLogs, notifier),
		Payments:  services.NewPaymentService(repos.Ledger, repos.Accounts, repos.Withdrawals, repos.AuditLogs, notifier),
		Deposits:  services.NewDepositService(repos.Deposits, repos.AuditLogs, notifier),
		Cards:     services.NewCardService(repos.Cards, repos.Accounts, repos.Ledger, repos.AuditLogs, notifier),
		KYC:       services.NewKYCService(repos.KYC, repos.AuditLogs, notifier),
		Admin: services.NewAdminService(repos.Ledger, repos.Accounts, repos.Deposits,
			repos.Withdrawals, repos.Cards, repos.KYC, repos.AuditLogs, notifier),
		Reconcile: services.NewReconcileService(repos.Accounts, repos.Txns),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
