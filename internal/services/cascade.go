package services

import (
	"context"

	"catalogapi/internal/common"
	"catalogapi/internal/models"
	"catalogapi/internal/repositories"
	"catalogapi/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BlobFailure is one blob the sweep could not delete.
type BlobFailure struct {
	BlobID   primitive.ObjectID `json:"blob_id"`
	NotFound bool               `json:"not_found"`
	Message  string             `json:"error"`
	Err      error              `json:"-"`
}

// SweepReport is the outcome of deleting the blobs behind a set of images.
// Failures never abort the sweep.
type SweepReport struct {
	Attempted []primitive.ObjectID `json:"attempted"`
	Deleted   []primitive.ObjectID `json:"deleted"`
	Failures  []BlobFailure        `json:"failures"`
}

func newSweepReport() *SweepReport {
	return &SweepReport{
		Attempted: []primitive.ObjectID{},
		Deleted:   []primitive.ObjectID{},
		Failures:  []BlobFailure{},
	}
}

// Orphaned lists failures where the blob may still exist.
func (r *SweepReport) Orphaned() []BlobFailure {
	var out []BlobFailure
	for _, f := range r.Failures {
		if !f.NotFound {
			out = append(out, f)
		}
	}
	return out
}

// SweepImages deletes the primary and thumbnail blob of every image, in
// order, logging and recording each failure.
func SweepImages(ctx context.Context, blobs storage.BlobStore, images []models.Image, log *zap.SugaredLogger) *SweepReport {
	report := newSweepReport()
	for _, img := range images {
		for _, id := range img.BlobIDs() {
			report.Attempted = append(report.Attempted, id)
			err := blobs.Delete(ctx, id)
			switch {
			case err == nil:
				report.Deleted = append(report.Deleted, id)
			case common.IsNotFound(err, "image"):
				log.Warnw("blob already missing during cascade delete", "blob_id", id.Hex())
				report.Failures = append(report.Failures, BlobFailure{BlobID: id, NotFound: true, Message: err.Error(), Err: err})
			default:
				log.Errorw("blob delete failed during cascade delete", "blob_id", id.Hex(), "error", err)
				report.Failures = append(report.Failures, BlobFailure{BlobID: id, Message: err.Error(), Err: err})
			}
		}
	}
	return report
}

// CascadeController runs the dependent-blob sweep for product and category
// deletes and queues orphaned blobs for a later retry.
type CascadeController struct {
	blobs   storage.BlobStore
	pending repositories.PendingDeletionRepository
	log     *zap.SugaredLogger
}

func NewCascadeController(blobs storage.BlobStore, pending repositories.PendingDeletionRepository, log *zap.SugaredLogger) *CascadeController {
	return &CascadeController{blobs: blobs, pending: pending, log: log}
}

func (c *CascadeController) Sweep(ctx context.Context, ownerKind string, ownerID primitive.ObjectID, images []models.Image) *SweepReport {
	report := SweepImages(ctx, c.blobs, images, c.log)
	if c.pending == nil {
		return report
	}
	for _, f := range report.Orphaned() {
		entry := &models.PendingBlobDeletion{
			BlobID:    f.BlobID.Hex(),
			OwnerKind: ownerKind,
			OwnerID:   ownerID.Hex(),
			LastError: f.Message,
		}
		if err := c.pending.Enqueue(context.WithoutCancel(ctx), entry); err != nil {
			c.log.Errorw("failed to record orphaned blob", "blob_id", entry.BlobID, "owner", ownerID.Hex(), "error", err)
		}
	}
	return report
}

// RetryResult summarises one pass over the pending deletion ledger.
type RetryResult struct {
	Retried int
	Cleared int
	Failed  int
}

// RetryPending retries up to limit queued blob deletions. A blob that is
// gone, or is deleted now, leaves the ledger.
func (c *CascadeController) RetryPending(ctx context.Context, limit int) (RetryResult, error) {
	var result RetryResult
	due, err := c.pending.ListDue(ctx, limit)
	if err != nil {
		return result, err
	}

	for _, d := range due {
		result.Retried++
		id, err := primitive.ObjectIDFromHex(d.BlobID)
		if err != nil {
			c.log.Warnw("dropping malformed pending blob id", "blob_id", d.BlobID)
			if err := c.pending.Remove(ctx, d.ID); err != nil {
				return result, err
			}
			result.Cleared++
			continue
		}

		delErr := c.blobs.Delete(ctx, id)
		if delErr == nil || common.IsNotFound(delErr, "image") {
			if err := c.pending.Remove(ctx, d.ID); err != nil {
				return result, err
			}
			result.Cleared++
			continue
		}

		result.Failed++
		c.log.Warnw("pending blob delete failed again", "blob_id", d.BlobID, "attempts", d.Attempts+1, "error", delErr)
		if err := c.pending.MarkFailed(ctx, d.ID, delErr.Error()); err != nil {
			return result, err
		}
	}
	return result, nil
}
