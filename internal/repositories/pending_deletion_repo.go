package repositories

import (
	"context"
	"fmt"

	"catalogapi/internal/models"

	"github.com/google/uuid"
)

// PendingDeletionRepository is the ledger of blobs a cascade delete could not remove.
type PendingDeletionRepository interface {
	Enqueue(ctx context.Context, d *models.PendingBlobDeletion) error
	ListDue(ctx context.Context, limit int) ([]*models.PendingBlobDeletion, error)
	Remove(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error
}

type pendingDeletionRepo struct {
	db Database
}

func NewPendingDeletionRepo(db Database) PendingDeletionRepository {
	return &pendingDeletionRepo{db: db}
}

func (r *pendingDeletionRepo) Enqueue(ctx context.Context, d *models.PendingBlobDeletion) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	query := `
		INSERT INTO pending_blob_deletions (id, blob_id, owner_kind, owner_id, attempts, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, d.ID, d.BlobID, d.OwnerKind, d.OwnerID, d.Attempts, d.LastError)
	return storeErr("enqueue pending deletion", err)
}

func (r *pendingDeletionRepo) ListDue(ctx context.Context, limit int) ([]*models.PendingBlobDeletion, error) {
	query := `
		SELECT id, blob_id, owner_kind, owner_id, attempts, last_error, created_at
		FROM pending_blob_deletions
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("list pending deletions", err)
	}
	defer rows.Close()

	var pending []*models.PendingBlobDeletion
	for rows.Next() {
		d := &models.PendingBlobDeletion{}
		if err := rows.Scan(&d.ID, &d.BlobID, &d.OwnerKind, &d.OwnerID, &d.Attempts, &d.LastError, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending deletion: %w", err)
		}
		pending = append(pending, d)
	}
	return pending, storeErr("list pending deletions", rows.Err())
}

func (r *pendingDeletionRepo) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_blob_deletions WHERE id = $1`, id)
	return storeErr("remove pending deletion", err)
}

func (r *pendingDeletionRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	query := `
		UPDATE pending_blob_deletions
		SET attempts = attempts + 1, last_error = $2
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, lastError)
	return storeErr("mark pending deletion failed", err)
}
