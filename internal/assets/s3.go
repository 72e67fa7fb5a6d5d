package assets

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/domain"
)

// ObjectAPI is the subset of the S3 client the store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	api     ObjectAPI
	bucket  string
	baseURL string
	timeout time.Duration
}

func NewS3Store(api ObjectAPI, bucket, publicBaseURL string) *S3Store {
	return &S3Store{
		api:     api,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		timeout: 15 * time.Second,
	}
}

// NewS3Client builds a path-style client for MinIO or any S3-compatible host.
func NewS3Client(ctx context.Context, cfg config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	}), nil
}

// New returns an S3 store when the bucket is configured, Noop otherwise.
func New(ctx context.Context, cfg config.Config) (Store, error) {
	if !cfg.S3Enabled() {
		return Noop{}, nil
	}
	cli, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	base := cfg.S3PublicBaseURL
	if base == "" {
		base = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return NewS3Store(cli, cfg.S3Bucket, base), nil
}

func (s *S3Store) Upload(ctx context.Context, folder, dataURI string) (domain.Asset, error) {
	p, err := decodeDataURI(dataURI)
	if err != nil {
		return domain.Asset{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := newKey(folder, p.Ext)
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.Data),
		ContentType: aws.String(p.ContentType),
	})
	if err != nil {
		return domain.Asset{}, apperr.Upstream(err, "Image upload failed")
	}
	return domain.Asset{PublicID: key, URL: s.baseURL + "/" + key}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return apperr.Upstream(err, "Image delete failed")
	}
	return nil
}
