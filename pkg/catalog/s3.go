package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes the bucket holding the manifest.
// Endpoint is optional and supports S3-compatible stores such as MinIO.
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	ManifestKey  string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3Source fetches the manifest object from an S3-compatible bucket.
// This matches the original gallery layout: the upload pipeline writes
// media and thumbnails into the bucket alongside a manifest.json.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
	id     string
}

// NewS3Source creates a source reading cfg.ManifestKey from cfg.Bucket.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	key := cfg.ManifestKey
	if key == "" {
		key = "manifest.json"
	}

	return &S3Source{
		client: client,
		bucket: cfg.Bucket,
		key:    key,
		id:     fmt.Sprintf("s3://%s/%s", cfg.Bucket, key),
	}, nil
}

// ID returns the s3:// URL of the manifest object.
func (s *S3Source) ID() string { return s.id }

// Client returns the underlying S3 client so resource loaders can share
// the connection pool and credentials.
func (s *S3Source) Client() *s3.Client { return s.client }

// Bucket returns the configured bucket name.
func (s *S3Source) Bucket() string { return s.bucket }

// Fetch downloads and decodes the full manifest object.
func (s *S3Source) Fetch(ctx context.Context) (*Manifest, error) {
	var m Manifest
	if err := s.getObject(ctx, "fetch", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FetchToken downloads the manifest object and reads only the token.
func (s *S3Source) FetchToken(ctx context.Context) (string, error) {
	var p manifestProbe
	if err := s.getObject(ctx, "probe", &p); err != nil {
		return "", err
	}
	return p.token(), nil
}

func (s *S3Source) getObject(ctx context.Context, op string, result any) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return &NetworkError{Op: op, URL: s.id, Err: err}
	}
	defer func() { _ = out.Body.Close() }()

	if err := json.NewDecoder(out.Body).Decode(result); err != nil {
		return &ValidationError{Reason: "malformed manifest body", Err: err}
	}
	return nil
}
