package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telecom-billing/internal/audit"
	"telecom-billing/internal/auth"
	"telecom-billing/internal/billing"
	"telecom-billing/internal/config"
	"telecom-billing/internal/dataset"
	"telecom-billing/internal/lines"
	"telecom-billing/internal/reporting"
	"telecom-billing/pkg/logger"
	"telecom-billing/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Lines live in memory, optionally seeded from a dataset file; bills are
	// archived in Postgres.
	lineRepo := lines.NewMemoryRepo()
	if cfg.Billing.DatasetPath != "" {
		customers, err := dataset.Load(cfg.Billing.DatasetPath, dataset.Options{DefaultCurrency: cfg.Billing.Currency})
		if err != nil {
			log.Error("dataset load failed", "path", cfg.Billing.DatasetPath, "err", err)
			os.Exit(1)
		}
		lineRepo.Seed(dataset.Lines(customers))
		log.Info("dataset loaded", "path", cfg.Billing.DatasetPath, "customers", len(customers))
	}

	auditSvc := audit.NewService(audit.NewMemoryRepo())

	billRepo := billing.NewPostgresRepo(db)
	billingSvc := billing.NewService(lineRepo, billRepo)
	billingSvc.Cache = billing.NewBillCache(rdb, cfg.Billing.BillCacheTTL)
	billingSvc.Locks = billing.NewRunLock(rdb, time.Minute)
	billingSvc.Audit = auditSvc

	reportSvc := reporting.NewService(billRepo, lineRepo)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, deps{
		Auth:    authManager,
		Billing: billingSvc,
		Lines:   lineRepo,
		Reports: reportSvc,
		Audit:   auditSvc,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
