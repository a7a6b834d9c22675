package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
)

func TestSongRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSongRepository(newTestDB(t), zap.NewNop())
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := &entity.Song{UserID: "user-a", Title: "Morning Light", Author: "Ana", SongPath: "song-Morning Light-a1", ImagePath: "image-Morning Light-a1", CreatedAt: base}
	second := &entity.Song{UserID: "user-b", Title: "Night Drive", Author: "Bo", SongPath: "song-Night Drive-b2", ImagePath: "image-Night Drive-b2", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, uuid.Nil, first.ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Night Drive", all[0].Title, "newest first")

	found, err := repo.List(ctx, "morning")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	mine, err := repo.ListByUserID(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "song-Night Drive-b2", mine[0].SongPath)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Author)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
