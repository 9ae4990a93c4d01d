package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// S3API is the subset of the AWS S3 client used by S3Storage.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3Storage implements Storage with the AWS SDK against any S3-compatible
// endpoint, using path-style addressing.
type S3Storage struct {
	client     S3API
	endpoint   string
	region     string
	publicBase string
}

// NewS3Storage loads an AWS config with static credentials and points the S3
// client at opts.Endpoint.
func NewS3Storage(ctx context.Context, opts Options) (*S3Storage, error) {
	host, secure := splitEndpoint(opts.Endpoint, opts.UseSSL)
	scheme := "http"
	if secure {
		scheme = "https"
	}
	endpoint := scheme + "://" + host

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return NewS3StorageWithClient(client, endpoint, opts.Region, opts.PublicBase), nil
}

// NewS3StorageWithClient wraps an existing client. endpoint is the base URL
// used to build public object URLs.
func NewS3StorageWithClient(client S3API, endpoint, region, publicBase string) *S3Storage {
	return &S3Storage{
		client:     client,
		endpoint:   strings.TrimRight(endpoint, "/"),
		region:     region,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// EnsureBucket creates bucket when HeadBucket reports it missing.
func (s *S3Storage) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("check bucket existence: %w", err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	log.Info().Str("bucket", bucket).Msg("storage: created bucket")
	return nil
}

// Upload puts obj with an explicit content length.
func (s *S3Storage) Upload(ctx context.Context, obj *Object) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(obj.Bucket),
		Key:           aws.String(obj.Key),
		Body:          obj.Body,
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
	}
	if obj.PublicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %q: %w", obj.Key, err)
	}
	return nil
}

// PublicURL mirrors MinioStorage.PublicURL.
func (s *S3Storage) PublicURL(bucket, key string) string {
	if s.publicBase != "" {
		return pathStyleURL(s.publicBase, "", key)
	}
	return pathStyleURL(s.endpoint, bucket, key)
}
