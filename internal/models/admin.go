package models

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username" validate:"required,min=3"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
