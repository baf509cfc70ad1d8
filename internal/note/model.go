package note

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user-owned text record. OwnerID is the only access-scoping key.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"index;not null;default:now()"`
}

// Draft is the writable part of a note.
type Draft struct {
	Title   string
	Content string
}

// Page is one window of search results plus the count of every match.
type Page struct {
	Notes      []Note
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
