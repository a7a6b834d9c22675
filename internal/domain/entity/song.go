package entity

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type Song struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	SongPath  string    `json:"song_path"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

// SongLinks are short-lived download URLs for a song's objects.
type SongLinks struct {
	SongURL  string `json:"song_url"`
	ImageURL string `json:"image_url"`
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type SongUpload struct {
	Title  string
	Author string
	Song   UploadFile
	Image  UploadFile
}
