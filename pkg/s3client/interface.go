package s3client

import (
	"context"
	"io"
)

// S3Interface defines the operations the exporter needs from an S3 client
type S3Interface interface {
	UploadFile(ctx context.Context, reader io.Reader, objectKey string, size int64, contentType string) error
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
	GetBucketName() string
}
