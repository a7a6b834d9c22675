package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

type SongRepository interface {
	Create(ctx context.Context, song *entity.Song) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Song, error)
	// List returns songs newest first; a non-empty title filters case-insensitively.
	List(ctx context.Context, title string) ([]*entity.Song, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Song, error)
}
