package repository

import (
	"context"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*entity.UserDetails, error)
	Upsert(ctx context.Context, user *entity.UserDetails) error
}
