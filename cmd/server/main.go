package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billed-app/billed-server/internal/config"
	"github.com/billed-app/billed-server/internal/handler"
	"github.com/billed-app/billed-server/internal/repository"
	"github.com/billed-app/billed-server/internal/service"
	"github.com/billed-app/billed-server/internal/storage"
	"github.com/billed-app/billed-server/pkg/database"
	"github.com/billed-app/billed-server/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	// Local overrides (ignored when absent)
	_ = gotenv.Load()

	configPath := "configs/config.yaml"
	if v := os.Getenv("BILLED_CONFIG"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Billed expense server",
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Storage.ReceiptDir, 0755); err != nil {
		logger.Fatal("Failed to create receipt directory", zap.Error(err))
	}

	// Repositories and store adapters
	billRepo := repository.NewBillRepository(db.DB, logger)
	sessionRepo := repository.NewSessionRepository(db.DB, logger)
	receipts := storage.NewLocalReceiptStorage(cfg.Storage.ReceiptDir, cfg.Storage.ReceiptURL, logger)

	// Services
	billList, err := service.NewBillListService(billRepo, logger)
	if err != nil {
		logger.Fatal("Failed to initialize bill list service", zap.Error(err))
	}
	newBills := service.NewNewBillService(billRepo, receipts, logger)
	export := service.NewExportService(billList, logger)

	router := handler.NewRouter(handler.Deps{
		Bills:    billList,
		NewBills: newBills,
		Export:   export,
		Sessions: sessionRepo,
		Receipts: receipts,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
