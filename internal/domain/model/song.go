package model

import (
	"time"

	"github.com/google/uuid"
)

// Song is an uploaded track. Paths are object keys in the songs/images buckets.
type Song struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `gorm:"not null" json:"author"`
	SongPath  string    `gorm:"not null" json:"song_path"`
	ImagePath string    `gorm:"not null" json:"image_path"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Song) TableName() string {
	return "songs"
}
