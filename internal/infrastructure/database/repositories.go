package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osvaldoteixeira/spotify-clone/internal/adapter/repository"
	domainRepo "github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	BillingCustomer domainRepo.BillingCustomerRepository
	Catalog         domainRepo.CatalogRepository
	Subscription    domainRepo.SubscriptionRepository
	Song            domainRepo.SongRepository
	User            domainRepo.UserRepository
	Webhook         domainRepo.WebhookEventRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		BillingCustomer: repository.NewBillingCustomerRepository(db, logger),
		Catalog:         repository.NewCatalogRepository(db, logger),
		Subscription:    repository.NewSubscriptionRepository(db, logger),
		Song:            repository.NewSongRepository(db, logger),
		User:            repository.NewUserRepository(db, logger),
		Webhook:         repository.NewWebhookRepository(db, logger),
	}
}
