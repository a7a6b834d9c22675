package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

type songRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSongRepository creates a new song repository
func NewSongRepository(db *gorm.DB, logger *zap.Logger) repository.SongRepository {
	return &songRepository{
		db:     db,
		logger: logger,
	}
}

func songToEntity(m *model.Song) *entity.Song {
	return &entity.Song{
		ID:        m.ID,
		UserID:    m.UserID,
		Author:    m.Author,
		Title:     m.Title,
		SongPath:  m.SongPath,
		ImagePath: m.ImagePath,
		CreatedAt: m.CreatedAt,
	}
}

// Create inserts the song and fills in its generated id and timestamp
func (r *songRepository) Create(ctx context.Context, song *entity.Song) error {
	if song.ID == uuid.Nil {
		song.ID = uuid.New()
	}
	m := &model.Song{
		ID:        song.ID,
		UserID:    song.UserID,
		Title:     song.Title,
		Author:    song.Author,
		SongPath:  song.SongPath,
		ImagePath: song.ImagePath,
		CreatedAt: song.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create song",
			zap.String("user_id", song.UserID),
			zap.String("title", song.Title),
			zap.Error(err))
		return fmt.Errorf("failed to create song: %w", err)
	}
	song.CreatedAt = m.CreatedAt
	return nil
}

func (r *songRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Song, error) {
	var m model.Song
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return songToEntity(&m), nil
}

func (r *songRepository) List(ctx context.Context, title string) ([]*entity.Song, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if title = strings.TrimSpace(title); title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	return r.find(query)
}

func (r *songRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Song, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC"))
}

func (r *songRepository) find(query *gorm.DB) ([]*entity.Song, error) {
	var songs []*model.Song
	if err := query.Find(&songs).Error; err != nil {
		r.logger.Error("Failed to list songs", zap.Error(err))
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	result := make([]*entity.Song, 0, len(songs))
	for _, s := range songs {
		result = append(result, songToEntity(s))
	}
	return result, nil
}
