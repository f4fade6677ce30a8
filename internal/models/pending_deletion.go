package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OwnerKindProduct  = "product"
	OwnerKindCategory = "category"
)

// PendingBlobDeletion records a blob whose cascade delete failed and must be retried.
type PendingBlobDeletion struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BlobID    string    `json:"blob_id" db:"blob_id"`
	OwnerKind string    `json:"owner_kind" db:"owner_kind"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Attempts  int       `json:"attempts" db:"attempts"`
	LastError string    `json:"last_error" db:"last_error"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
