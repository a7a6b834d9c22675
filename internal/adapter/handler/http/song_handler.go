package http

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

type SongHandler struct {
	songs  *usecase.SongService
	users  *usecase.UserService
	logger *zap.Logger
}

func NewSongHandler(songs *usecase.SongService, users *usecase.UserService, logger *zap.Logger) *SongHandler {
	return &SongHandler{
		songs:  songs,
		users:  users,
		logger: logger,
	}
}

// Upload handles POST /api/v1/songs (multipart: title, author, song, image)
func (h *SongHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	identity, err := h.users.Current(ctx)
	if err != nil {
		return err
	}

	upload := entity.SongUpload{
		Title:  c.FormValue("title"),
		Author: c.FormValue("author"),
	}

	songFile, closeSong, err := formFile(c, "song")
	if err != nil {
		return err
	}
	defer closeSong()
	imageFile, closeImage, err := formFile(c, "image")
	if err != nil {
		return err
	}
	defer closeImage()

	upload.Song = songFile
	upload.Image = imageFile

	song, err := h.songs.Upload(ctx, identity.ID, upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, song)
}

func formFile(c echo.Context, field string) (entity.UploadFile, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return entity.UploadFile{}, func() {}, apperrors.NewAppError(apperrors.ErrInvalidArgument, field+" file is required", err)
	}

	var file multipart.File
	file, err = header.Open()
	if err != nil {
		return entity.UploadFile{}, func() {}, apperrors.NewAppError(apperrors.ErrInvalidArgument, "failed to read "+field+" file", err)
	}

	return entity.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, func() { _ = file.Close() }, nil
}

// List handles GET /api/v1/songs?title=
func (h *SongHandler) List(c echo.Context) error {
	songs, err := h.songs.List(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"songs": songs})
}

// ListMine handles GET /api/v1/me/songs
func (h *SongHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	identity, err := h.users.Current(ctx)
	if err != nil {
		return err
	}

	songs, err := h.songs.ListByUser(ctx, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"songs": songs})
}

// Get handles GET /api/v1/songs/:id
func (h *SongHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid song id", err)
	}

	song, links, err := h.songs.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"song":  song,
		"links": links,
	})
}
