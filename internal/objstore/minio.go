package objstore

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"catalogo/internal/domain"
)

// MinioClient implements Client against any S3-compatible endpoint.
type MinioClient struct {
	mc *minio.Client
}

// NewMinio builds a client for the given endpoint, e.g.
// "s3.eu-central-1.amazonaws.com" for AWS proper.
func NewMinio(endpoint, accessKey, secretKey string, useSSL bool) (*MinioClient, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object-store client: %w", err)
	}
	return &MinioClient{mc: mc}, nil
}

// AWSEndpoint returns the S3 endpoint host for a region.
func AWSEndpoint(region string) string {
	return fmt.Sprintf("s3.%s.amazonaws.com", region)
}

// EnsureBucket creates the bucket if it does not exist yet.
func (c *MinioClient) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket: %v", domain.ErrTransport, err)
	}
	if exists {
		return nil
	}
	if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: create bucket: %v", domain.ErrTransport, err)
	}
	log.Printf("[UPLOAD] Created bucket %s", bucket)
	return nil
}

func (c *MinioClient) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := c.mc.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", domain.ErrTransport, key, err)
	}
	return nil
}
