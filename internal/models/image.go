package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is embedded in products and categories. ID is a positional label
// that NumberImages rewrites before every save.
type Image struct {
	ID           string              `json:"id" bson:"id"`
	ImageSrc     primitive.ObjectID  `json:"image_src" bson:"image_src"`
	ThumbnailSrc *primitive.ObjectID `json:"thumbnail_src,omitempty" bson:"thumbnail_src,omitempty"`
}

// BlobIDs lists the primary blob id followed by the thumbnail id when present.
func (i Image) BlobIDs() []primitive.ObjectID {
	ids := []primitive.ObjectID{i.ImageSrc}
	if i.ThumbnailSrc != nil && !i.ThumbnailSrc.IsZero() {
		ids = append(ids, *i.ThumbnailSrc)
	}
	return ids
}

// ImageLabel formats the 1-based positional id, e.g. Image01.
func ImageLabel(index int) string {
	return fmt.Sprintf("Image%02d", index)
}

// NumberImages assigns Image01..ImageNN in list order, overwriting any prior id.
func NumberImages(images []Image) {
	for i := range images {
		images[i].ID = ImageLabel(i + 1)
	}
}
