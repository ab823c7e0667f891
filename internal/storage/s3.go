package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// jpegDataURIPrefix is the prefix of captured frames as the camera session
// encodes them.
const jpegDataURIPrefix = "data:image/jpeg;base64,"

// Errors returned by the photo store.
var (
	ErrInvalidDataURI = errors.New("photo payload is not a JPEG data URI")
	ErrMissingCreds   = errors.New(
		"missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
)

// ObjectStore is the subset of the MinIO client used by the photo store.
// This allows for easy mocking in tests.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// PhotoStore uploads captured request photos to an S3-compatible bucket.
type PhotoStore struct {
	client ObjectStore
	bucket string
	log    *slog.Logger
}

// NewPhotoStore initializes a photo store against the MinIO server configured
// through environment variables.
func NewPhotoStore(log *slog.Logger, bucket string) (*PhotoStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, ErrMissingCreds
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Info("connected to object storage", "endpoint", endpoint, "bucket", bucket)

	return NewPhotoStoreWithClient(client, bucket, log), nil
}

// NewPhotoStoreWithClient creates a photo store with a custom object store
// client. Useful for testing.
func NewPhotoStoreWithClient(client ObjectStore, bucket string, log *slog.Logger) *PhotoStore {
	return &PhotoStore{client: client, bucket: bucket, log: log}
}

// EnsureBucket creates the photo bucket when it does not exist yet.
func (ps *PhotoStore) EnsureBucket(ctx context.Context, region string) error {
	exists, err := ps.client.BucketExists(ctx, ps.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err = ps.client.MakeBucket(ctx, ps.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", ps.bucket, err)
		}
	}
	return nil
}

// Upload stores a captured JPEG data URI as an object under the request it
// answers and returns the object key. Keys are unique per upload, so multiple
// photos for one request never collide.
func (ps *PhotoStore) Upload(ctx context.Context, requestID int, dataURI string) (string, error) {
	payload, ok := strings.CutPrefix(dataURI, jpegDataURIPrefix)
	if !ok {
		return "", ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}

	key := fmt.Sprintf("requests/%d/%s.jpg", requestID, uuid.NewString())

	_, err = ps.client.PutObject(
		ctx,
		ps.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to store photo object: %w", err)
	}

	ps.log.Info("stored request photo", "request_id", requestID, "key", key, "bytes", len(data))

	return key, nil
}
