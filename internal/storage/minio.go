// Package storage moves blob bytes in and out of the object store and the
// local filesystem.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/config"
)

// objectClient is the slice of the MinIO client the gateway uses; tests
// substitute a recording fake.
type objectClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	SetBucketPolicy(ctx context.Context, bucket, policy string) error
}

// AttachmentRef describes a stored blob.
type AttachmentRef struct {
	PublicURL  string
	PrivateURL string
	Name       string
	Extension  string
	Size       int64
}

// BlobStore uploads and addresses named byte blobs in a single bucket.
// The client and bucket policy are process-wide; the bucket-exists
// check-then-create race is acceptable because creation is idempotent.
type BlobStore struct {
	client         objectClient
	bucket         string
	endpoint       string
	publicEndpoint string
	maxSize        int64
}

func NewBlobStore(ctx context.Context, cfg config.Config) (*BlobStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	blobs := &BlobStore{
		client:         client,
		bucket:         cfg.MinioBucket,
		endpoint:       cfg.MinioEndpoint,
		publicEndpoint: cfg.MinioPublicEndpoint,
		maxSize:        cfg.AttachmentMaxBytes,
	}
	if err := blobs.ensureBucket(ctx); err != nil {
		return nil, err
	}
	if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, publicReadPolicy(cfg.MinioBucket)); err != nil {
		return nil, err
	}
	return blobs, nil
}

// UploadBytes stores a blob under a collision-resistant key. The size gate
// runs after the bucket check but before the write, so oversized blobs
// never reach the network call.
func (b *BlobStore) UploadBytes(ctx context.Context, data []byte, name, extension string) (AttachmentRef, error) {
	if err := b.ensureBucket(ctx); err != nil {
		return AttachmentRef{}, apperrors.NotCreated(err, "could not upload file")
	}
	if int64(len(data)) > b.maxSize {
		return AttachmentRef{}, apperrors.FileTooLarge(
			"maximum file size is %d KiB", b.maxSize/1024)
	}
	key := uuid.NewString() + "-" + name
	if extension != "" {
		key += "." + extension
	}
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data),
		int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return AttachmentRef{}, apperrors.NotCreated(err, "could not upload file")
	}
	return AttachmentRef{
		PublicURL:  b.PublicURL(key),
		PrivateURL: b.PrivateURL(key),
		Name:       name,
		Extension:  extension,
		Size:       int64(len(data)),
	}, nil
}

// UploadForm buffers a multipart upload into memory and delegates to
// UploadBytes. A missing filename falls back to a generic png name.
func (b *BlobStore) UploadForm(ctx context.Context, file *multipart.FileHeader) (AttachmentRef, error) {
	name, extension := SplitFileName(file.Filename)
	if name == "" {
		name, extension = "file", "png"
	}
	src, err := file.Open()
	if err != nil {
		return AttachmentRef{}, apperrors.NotCreated(err, "could not read upload")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return AttachmentRef{}, apperrors.NotCreated(err, "could not read upload")
	}
	return b.UploadBytes(ctx, data, name, extension)
}

// PublicURL addresses an object through the public host.
func (b *BlobStore) PublicURL(key string) string {
	return "http://" + b.publicEndpoint + "/" + b.bucket + "/" + key
}

// PrivateURL addresses an object through the internal endpoint.
func (b *BlobStore) PrivateURL(key string) string {
	return "http://" + b.endpoint + "/" + b.bucket + "/" + key
}

func (b *BlobStore) ensureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// SplitFileName splits a full file name into name and extension. Names
// without a dot keep an empty extension.
func SplitFileName(full string) (name, extension string) {
	idx := strings.LastIndex(full, ".")
	if idx < 0 {
		return full, ""
	}
	return full[:idx], full[idx+1:]
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": "*",
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, bucket)
}
