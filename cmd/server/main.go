package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/config"
	domainProvider "github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/database"
	grpcServer "github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/grpc"
	httpServer "github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/http"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/storage"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	"github.com/osvaldoteixeira/spotify-clone/pkg/logger"
	"github.com/osvaldoteixeira/spotify-clone/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.LoggerConfig())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, cfg.Log.SQLLevel, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Payment provider
	payment, err := provider.NewFactory(cfg, zapLogger).GetProvider(domainProvider.ProviderTypeStripe)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment provider", zap.Error(err))
	}

	// Object storage
	objectStorage, err := storage.NewS3Storage(ctx, cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Subscription change events
	var publisher usecase.EventPublisher
	if cfg.Redis.Addr != "" {
		redisClient, err := messaging.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		publisher = redisClient
	} else {
		zapLogger.Warn("Redis not configured; subscription events stay in process")
		publisher = messaging.NewMemoryClient()
	}

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Dependencies{
		Repos:     repos,
		Payment:   payment,
		Verifier:  payment,
		Storage:   objectStorage,
		Publisher: publisher,
	})

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
