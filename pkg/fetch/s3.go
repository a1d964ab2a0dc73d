package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Loader fetches resources from an S3-compatible bucket, treating
// refs as object keys. This is the native transport for the original
// gallery layout where media and thumbnails live next to the manifest.
type S3Loader struct {
	client *s3.Client
	bucket string
}

// NewS3Loader creates a loader over an existing S3 client.
func NewS3Loader(client *s3.Client, bucket string) *S3Loader {
	return &S3Loader{client: client, bucket: bucket}
}

// Load fetches the object at key ref.
func (l *S3Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", l.bucket, ref, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", l.bucket, ref, err)
	}
	return data, nil
}
