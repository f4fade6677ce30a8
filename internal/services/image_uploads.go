package services

import (
	"context"
	"io"

	"catalogapi/internal/models"
	"catalogapi/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ImageUpload is one uploaded file headed for the blob store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// storeUploads puts every upload and returns the embedded images in upload
// order. On failure the blobs stored so far are swept before returning.
func storeUploads(ctx context.Context, blobs storage.BlobStore, uploads []ImageUpload, log *zap.SugaredLogger) ([]models.Image, error) {
	images := make([]models.Image, 0, len(uploads))
	for _, u := range uploads {
		ref, err := blobs.Put(ctx, u.Body, storage.PutOptions{Filename: u.Filename, ContentType: u.ContentType})
		if err != nil {
			SweepImages(context.WithoutCancel(ctx), blobs, images, log)
			return nil, err
		}
		thumb := ref.ThumbnailID
		images = append(images, models.Image{ImageSrc: ref.ID, ThumbnailSrc: &thumb})
	}
	models.NumberImages(images)
	return images, nil
}

// removedImages returns the images of before whose primary blob is gone from after.
func removedImages(before, after []models.Image) []models.Image {
	kept := make(map[primitive.ObjectID]struct{}, len(after))
	for _, img := range after {
		kept[img.ImageSrc] = struct{}{}
	}
	var removed []models.Image
	for _, img := range before {
		if _, ok := kept[img.ImageSrc]; !ok {
			removed = append(removed, img)
		}
	}
	return removed
}
