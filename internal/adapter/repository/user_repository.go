package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user details repository
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.UserDetails, error) {
	var m model.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get user details",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &entity.UserDetails{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		FullName:       m.FullName,
		AvatarURL:      m.AvatarURL,
		BillingAddress: map[string]interface{}(m.BillingAddress),
		PaymentMethod:  map[string]interface{}(m.PaymentMethod),
	}, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.UserDetails) error {
	m := &model.User{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName,
		AvatarURL:      user.AvatarURL,
		BillingAddress: model.JSONB(user.BillingAddress),
		PaymentMethod:  model.JSONB(user.PaymentMethod),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
