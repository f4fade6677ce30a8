package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"catalogapi/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// GridFSStore keeps blobs in a GridFS bucket of the catalog database.
type GridFSStore struct {
	db     *mongo.Database
	bucket string
}

func NewGridFSStore(db *mongo.Database, bucket string) *GridFSStore {
	return &GridFSStore{db: db, bucket: bucket}
}

// gridFSFile covers both the driver layout (metadata.contentType) and the
// legacy top-level contentType written by older uploaders.
type gridFSFile struct {
	Length      int64  `bson:"length"`
	ContentType string `bson:"contentType"`
	Metadata    struct {
		ContentType string `bson:"contentType"`
	} `bson:"metadata"`
}

// openBucket returns a bucket whose stream deadlines follow ctx. Buckets are
// cheap handles over the files and chunks collections.
func (s *GridFSStore) openBucket(ctx context.Context, withDeadline bool) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.bucket))
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", s.bucket, err)
	}
	if dl, ok := ctx.Deadline(); ok && withDeadline {
		if err := bucket.SetReadDeadline(dl); err != nil {
			return nil, err
		}
		if err := bucket.SetWriteDeadline(dl); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

func (s *GridFSStore) Put(ctx context.Context, r io.Reader, opts PutOptions) (BlobRef, error) {
	return putWithThumbnail(ctx, s, r, opts)
}

func (s *GridFSStore) writeObject(ctx context.Context, id primitive.ObjectID, data []byte, filename, contentType string) error {
	bucket, err := s.openBucket(ctx, true)
	if err != nil {
		return err
	}
	uploadOpts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	if err := bucket.UploadFromStreamWithID(id, filename, bytes.NewReader(data), uploadOpts); err != nil {
		return fmt.Errorf("upload blob %s: %w", id.Hex(), err)
	}
	return nil
}

func (s *GridFSStore) Get(ctx context.Context, id primitive.ObjectID) (*Blob, error) {
	var file gridFSFile
	err := s.db.Collection(s.bucket+".files").FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFound("image")
	}
	if err != nil {
		return nil, fmt.Errorf("find blob %s: %w", id.Hex(), err)
	}

	// the stream outlives the request deadline once opened
	bucket, err := s.openBucket(ctx, false)
	if err != nil {
		return nil, err
	}
	stream, err := bucket.OpenDownloadStream(id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, common.NotFound("image")
	}
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", id.Hex(), err)
	}

	contentType := file.Metadata.ContentType
	if contentType == "" {
		contentType = file.ContentType
	}
	return &Blob{Body: stream, ContentType: contentTypeOrDefault(contentType), Size: file.Length}, nil
}

// Delete removes the blob. Files uploaded by the legacy admin carry their
// thumbnail id in the files document; that thumbnail goes with it.
func (s *GridFSStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	var file struct {
		ThumbnailID primitive.ObjectID `bson:"thumbnail_id,omitempty"`
	}
	err := s.db.Collection(s.bucket+".files").FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"thumbnail_id": 1})).Decode(&file)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("find blob %s: %w", id.Hex(), err)
	}

	if err := s.deleteObject(ctx, id); err != nil {
		return err
	}
	if file.ThumbnailID.IsZero() {
		return nil
	}
	if err := s.deleteObject(ctx, file.ThumbnailID); err != nil && !common.IsNotFound(err, "") {
		return err
	}
	return nil
}

func (s *GridFSStore) deleteObject(ctx context.Context, id primitive.ObjectID) error {
	bucket, err := s.openBucket(ctx, true)
	if err != nil {
		return err
	}
	err = bucket.DeleteContext(ctx, id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return common.NotFound("image")
	}
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", id.Hex(), err)
	}
	return nil
}

func (s *GridFSStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}
