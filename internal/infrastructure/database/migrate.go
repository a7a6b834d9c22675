package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
)

// customIndexes are partial indexes GORM tags cannot express.
// The syntax is shared by PostgreSQL and SQLite.
var customIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_webhook_events_unprocessed ON stripe_webhook_events (created_at) WHERE status IN ('pending', 'failed')`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_user_entitled ON subscriptions (user_id) WHERE status IN ('active', 'trialing')`,
	`CREATE INDEX IF NOT EXISTS idx_prices_active_product ON prices (product_id, unit_amount) WHERE active`,
}

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

func createCustomIndexes(db *gorm.DB) error {
	for _, stmt := range customIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
