package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"catalogapi/internal/common"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinioStore keeps blobs as objects keyed by the hex blob id.
type MinioStore struct {
	client *minio.Client
	bucket string
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

func NewMinioStore(opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// EnsureBucketExists creates the bucket on first start.
func (m *MinioStore) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *MinioStore) Put(ctx context.Context, r io.Reader, opts PutOptions) (BlobRef, error) {
	return putWithThumbnail(ctx, m, r, opts)
}

func (m *MinioStore) writeObject(ctx context.Context, id primitive.ObjectID, data []byte, filename, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, id.Hex(), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"filename": filename},
	})
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", id.Hex(), err)
	}
	return nil
}

func (m *MinioStore) Get(ctx context.Context, id primitive.ObjectID) (*Blob, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, id.Hex(), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", id.Hex(), err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, common.NotFound("image")
		}
		return nil, fmt.Errorf("stat blob %s: %w", id.Hex(), err)
	}
	return &Blob{Body: obj, ContentType: contentTypeOrDefault(info.ContentType), Size: info.Size}, nil
}

// Delete stats first because RemoveObject succeeds on missing keys.
func (m *MinioStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := m.client.StatObject(ctx, m.bucket, id.Hex(), minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return common.NotFound("image")
		}
		return fmt.Errorf("stat blob %s: %w", id.Hex(), err)
	}
	if err := m.client.RemoveObject(ctx, m.bucket, id.Hex(), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete blob %s: %w", id.Hex(), err)
	}
	return nil
}

func (m *MinioStore) Ping(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
