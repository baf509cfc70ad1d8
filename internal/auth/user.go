package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"type:text;not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}

// Identity is the part of a user other components may see.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name}
}
