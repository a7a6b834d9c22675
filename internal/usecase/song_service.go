package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

// SongOptions selects the buckets tracks are stored in
type SongOptions struct {
	SongsBucket  string
	ImagesBucket string
	PresignTTL   time.Duration
}

// SongService uploads and lists tracks
type SongService struct {
	songRepo repository.SongRepository
	storage  provider.ObjectStorage
	options  SongOptions
	logger   *zap.Logger
	newID    func() (string, error)
}

// NewSongService creates a new song service instance
func NewSongService(songRepo repository.SongRepository, storage provider.ObjectStorage, options SongOptions, logger *zap.Logger) *SongService {
	return &SongService{
		songRepo: songRepo,
		storage:  storage,
		options:  options,
		logger:   logger,
		newID:    func() (string, error) { return gonanoid.New() },
	}
}

// SongObjectKeys returns the song and image object keys sharing one upload id.
func SongObjectKeys(title, id string) (songKey, imageKey string) {
	return "song-" + title + "-" + id, "image-" + title + "-" + id
}

// Upload stores the audio file, then the cover image, then the songs row.
// Objects already uploaded stay in place when a later step fails.
func (s *SongService) Upload(ctx context.Context, userID string, upload entity.SongUpload) (*entity.Song, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, toAppError(err, "failed to generate upload id")
	}
	songKey, imageKey := SongObjectKeys(upload.Title, id)

	if err := s.storage.Upload(ctx, s.options.SongsBucket, songKey, upload.Song.Body, upload.Song.Size, upload.Song.ContentType); err != nil {
		s.logger.Error("Failed song upload", zap.String("user_id", userID), zap.String("key", songKey), zap.Error(err))
		return nil, toAppError(&domainErrors.StorageError{Op: "upload_song", Bucket: s.options.SongsBucket, Key: songKey, Cause: err}, "")
	}

	if err := s.storage.Upload(ctx, s.options.ImagesBucket, imageKey, upload.Image.Body, upload.Image.Size, upload.Image.ContentType); err != nil {
		s.logger.Error("Failed image upload", zap.String("user_id", userID), zap.String("key", imageKey), zap.Error(err))
		return nil, toAppError(&domainErrors.StorageError{Op: "upload_image", Bucket: s.options.ImagesBucket, Key: imageKey, Cause: err}, "")
	}

	song := &entity.Song{
		UserID:    userID,
		Title:     upload.Title,
		Author:    upload.Author,
		SongPath:  songKey,
		ImagePath: imageKey,
	}
	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, toAppError(err, "failed to save song")
	}

	s.logger.Info("Song uploaded",
		zap.String("user_id", userID),
		zap.String("song_id", song.ID.String()),
		zap.String("song_path", songKey))
	return song, nil
}

func validateUpload(upload entity.SongUpload) error {
	switch {
	case strings.TrimSpace(upload.Title) == "":
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "title is required", nil)
	case strings.TrimSpace(upload.Author) == "":
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "author is required", nil)
	case upload.Song.Body == nil:
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "song file is required", nil)
	case upload.Image.Body == nil:
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "image file is required", nil)
	case !strings.HasSuffix(strings.ToLower(upload.Song.Name), ".mp3"):
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "song must be an .mp3 file", nil)
	case !strings.HasPrefix(upload.Image.ContentType, "image/"):
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "image must be an image file", nil)
	}
	return nil
}

// List returns all songs newest first, optionally filtered by title
func (s *SongService) List(ctx context.Context, title string) ([]*entity.Song, error) {
	songs, err := s.songRepo.List(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, toAppError(err, "failed to list songs")
	}
	return songs, nil
}

// ListByUser returns the songs uploaded by the user
func (s *SongService) ListByUser(ctx context.Context, userID string) ([]*entity.Song, error) {
	songs, err := s.songRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, toAppError(err, "failed to list songs")
	}
	return songs, nil
}

// Get returns a song with presigned download links for its objects
func (s *SongService) Get(ctx context.Context, id uuid.UUID) (*entity.Song, *entity.SongLinks, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, toAppError(err, "failed to get song")
	}
	if song == nil {
		return nil, nil, toAppError(domainErrors.ErrSongNotFound, "")
	}

	songURL, err := s.storage.PresignGet(ctx, s.options.SongsBucket, song.SongPath, s.options.PresignTTL)
	if err != nil {
		return nil, nil, toAppError(&domainErrors.StorageError{Op: "presign", Bucket: s.options.SongsBucket, Key: song.SongPath, Cause: err}, "")
	}
	imageURL, err := s.storage.PresignGet(ctx, s.options.ImagesBucket, song.ImagePath, s.options.PresignTTL)
	if err != nil {
		return nil, nil, toAppError(&domainErrors.StorageError{Op: "presign", Bucket: s.options.ImagesBucket, Key: song.ImagePath, Cause: err}, "")
	}

	return song, &entity.SongLinks{SongURL: songURL, ImageURL: imageURL}, nil
}
