package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"education-backend-go/internal/apperrors"
)

type fakeObjectClient struct {
	bucketExists bool
	madeBuckets  []string
	putKeys      []string
	putSizes     []int64
	policies     []string
}

func (f *fakeObjectClient) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeObjectClient) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.madeBuckets = append(f.madeBuckets, bucket)
	f.bucketExists = true
	return nil
}

func (f *fakeObjectClient) PutObject(_ context.Context, _ string, key string, reader io.Reader, size int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return minio.UploadInfo{}, err
	}
	f.putKeys = append(f.putKeys, key)
	f.putSizes = append(f.putSizes, size)
	return minio.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeObjectClient) SetBucketPolicy(_ context.Context, _ string, policy string) error {
	f.policies = append(f.policies, policy)
	return nil
}

func newTestBlobStore(fake *fakeObjectClient, maxSize int64) *BlobStore {
	return &BlobStore{
		client:         fake,
		bucket:         "attachments",
		endpoint:       "minio:9000",
		publicEndpoint: "files.example.com",
		maxSize:        maxSize,
	}
}

func TestUploadBytes(t *testing.T) {
	fake := &fakeObjectClient{bucketExists: true}
	blobs := newTestBlobStore(fake, 1024)

	ref, err := blobs.UploadBytes(context.Background(), []byte("hello"), "report", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "report", ref.Name)
	assert.Equal(t, "pdf", ref.Extension)
	assert.Equal(t, int64(5), ref.Size)

	require.Len(t, fake.putKeys, 1)
	key := fake.putKeys[0]
	assert.True(t, strings.HasSuffix(key, "-report.pdf"), "key %q", key)
	assert.Equal(t, "http://files.example.com/attachments/"+key, ref.PublicURL)
	assert.Equal(t, "http://minio:9000/attachments/"+key, ref.PrivateURL)
}

func TestUploadBytesUniqueKeys(t *testing.T) {
	fake := &fakeObjectClient{bucketExists: true}
	blobs := newTestBlobStore(fake, 1024)
	ctx := context.Background()

	_, err := blobs.UploadBytes(ctx, []byte("a"), "report", "pdf")
	require.NoError(t, err)
	_, err = blobs.UploadBytes(ctx, []byte("a"), "report", "pdf")
	require.NoError(t, err)

	require.Len(t, fake.putKeys, 2)
	assert.NotEqual(t, fake.putKeys[0], fake.putKeys[1])
}

func TestUploadBytesOversized(t *testing.T) {
	fake := &fakeObjectClient{bucketExists: true}
	blobs := newTestBlobStore(fake, 4)

	_, err := blobs.UploadBytes(context.Background(), []byte("hello"), "report", "pdf")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFileTooLarge))
	assert.Empty(t, fake.putKeys, "oversized upload must not reach the object store")
}

func TestUploadBytesCreatesMissingBucket(t *testing.T) {
	fake := &fakeObjectClient{}
	blobs := newTestBlobStore(fake, 1024)

	_, err := blobs.UploadBytes(context.Background(), []byte("x"), "a", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"attachments"}, fake.madeBuckets)
}

func TestSplitFileName(t *testing.T) {
	name, extension := SplitFileName("report.final.pdf")
	assert.Equal(t, "report.final", name)
	assert.Equal(t, "pdf", extension)

	name, extension = SplitFileName("README")
	assert.Equal(t, "README", name)
	assert.Empty(t, extension)
}
