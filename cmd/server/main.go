package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stephdawes/moneymash-backend/config"
	"github.com/stephdawes/moneymash-backend/internal/adapter/httpapi"
	"github.com/stephdawes/moneymash-backend/internal/adapter/repository/memory"
	"github.com/stephdawes/moneymash-backend/internal/adapter/repository/postgres"
	"github.com/stephdawes/moneymash-backend/internal/domain"
	"github.com/stephdawes/moneymash-backend/internal/usecase/chart"
	"github.com/stephdawes/moneymash-backend/internal/usecase/deletion"
	"github.com/stephdawes/moneymash-backend/internal/usecase/ledger"
	"github.com/stephdawes/moneymash-backend/internal/usecase/seeder"
	"github.com/stephdawes/moneymash-backend/internal/usecase/snapshot"
	"github.com/stephdawes/moneymash-backend/internal/usecase/valuation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// 1. Repositories
	var (
		accounts     domain.AccountRepository
		observations domain.ObservationRepository
		snapshots    domain.SnapshotRepository
	)
	switch cfg.Storage {
	case "memory":
		store := memory.NewStore()
		accounts = store.Accounts()
		observations = store.Observations()
		snapshots = store.Snapshots()
	case "postgres":
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}

		accounts = postgres.NewAccountRepository(db)
		observations = postgres.NewObservationRepository(db)
		snapshots = postgres.NewSnapshotRepository(db)
	default:
		logger.Fatal("unknown storage backend", zap.String("storage", cfg.Storage))
	}

	// 2. Services
	clock := domain.SystemClock{}
	valuationSvc := valuation.NewService(accounts, observations, logger)
	snapshotMgr := snapshot.NewManager(snapshots, observations, valuationSvc, clock, logger)
	ledgerSvc := ledger.NewService(accounts, observations, snapshotMgr, logger)
	deletionCoord := deletion.NewCoordinator(observations, snapshotMgr, logger)
	charts := chart.NewBuilder(accounts, observations, snapshots, logger)

	ctx := context.Background()

	if cfg.SeedSampleData {
		sampleSeeder := seeder.NewSampleSeeder(accounts, observations, snapshotMgr, clock, logger)
		if err := sampleSeeder.PopulateIfEmpty(ctx); err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
	}

	// Rebuild the snapshot series if the store arrives empty or degenerate.
	if err := snapshotMgr.BuildAll(ctx, domain.FullPolicy()); err != nil {
		logger.Fatal("failed to build snapshots", zap.Error(err))
	}

	// 3. HTTP server
	apiServer := httpapi.NewServer(ledgerSvc, valuationSvc, deletionCoord, charts, clock, logger)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: apiServer.Router(cfg.APIToken),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("http server stopped")
}
