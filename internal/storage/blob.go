package storage

import (
	"context"
	"io"

	"catalogapi/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultContentType = "application/octet-stream"

// BlobStore keeps image payloads outside the document store. Every Put also
// stores a thumbnail bounded to ThumbnailSize.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, opts PutOptions) (BlobRef, error)
	// Get opens a lazy single-pass stream. Callers must close Body.
	Get(ctx context.Context, id primitive.ObjectID) (*Blob, error)
	// Delete returns common.NotFound("image") when the blob does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error
	Ping(ctx context.Context) error
}

type PutOptions struct {
	Filename    string
	ContentType string
}

// BlobRef identifies a stored image and its derived thumbnail.
type BlobRef struct {
	ID          primitive.ObjectID
	ThumbnailID primitive.ObjectID
}

type Blob struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ParseBlobID validates an external blob identifier.
func ParseBlobID(raw string) (primitive.ObjectID, error) {
	return common.ParseObjectID(raw, "image_id")
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return DefaultContentType
	}
	return ct
}

// rawWriter is implemented by each backend; putWithThumbnail layers thumbnail
// derivation on top of it.
type rawWriter interface {
	writeObject(ctx context.Context, id primitive.ObjectID, data []byte, filename, contentType string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func putWithThumbnail(ctx context.Context, w rawWriter, r io.Reader, opts PutOptions) (BlobRef, error) {
	img, err := PrepareImage(r, opts)
	if err != nil {
		return BlobRef{}, err
	}

	ref := BlobRef{ID: primitive.NewObjectID(), ThumbnailID: primitive.NewObjectID()}
	if err := w.writeObject(ctx, ref.ID, img.Data, img.Filename, img.ContentType); err != nil {
		return BlobRef{}, err
	}
	if err := w.writeObject(ctx, ref.ThumbnailID, img.Thumbnail, "thumbnail_"+img.Filename, img.ThumbnailContentType); err != nil {
		// best effort: the primary blob must not outlive a failed put
		_ = w.Delete(context.WithoutCancel(ctx), ref.ID)
		return BlobRef{}, err
	}
	return ref, nil
}
