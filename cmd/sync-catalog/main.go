package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/config"
	domainProvider "github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/database"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	"github.com/osvaldoteixeira/spotify-clone/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "sync-catalog",
		Short: "Mirror the Stripe product catalog into the database",
		Long: "Lists every product and price from Stripe and upserts them into the local catalog.\n" +
			"With --seed the catalog is loaded from a YAML file instead (local development).",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), seedPath)
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "load products and prices from a YAML file instead of Stripe")
	return cmd
}

func runSync(ctx context.Context, seedPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, cfg.Log.SQLLevel, zapLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	repos := database.NewRepositories(db, zapLogger)

	payment, err := provider.NewFactory(cfg, zapLogger).GetProvider(domainProvider.ProviderTypeStripe)
	if err != nil {
		return err
	}
	catalog := usecase.NewCatalogService(repos.Catalog, payment, zapLogger)

	var result *usecase.SyncResult
	if seedPath != "" {
		zapLogger.Info("Seeding catalog from YAML", zap.String("path", seedPath))
		products, err := loadCatalogSeed(seedPath)
		if err != nil {
			return err
		}
		result, err = catalog.ApplySeed(ctx, products)
		if err != nil {
			return err
		}
	} else {
		result, err = catalog.SyncFromProvider(ctx)
		if err != nil {
			return err
		}
	}

	zapLogger.Info("Catalog sync completed",
		zap.Int("products", result.Products),
		zap.Int("prices", result.Prices))
	_, _ = fmt.Fprintf(os.Stdout, "Synced %d products and %d prices\n", result.Products, result.Prices)
	return nil
}
