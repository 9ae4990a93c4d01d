package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// aclHeader is forwarded verbatim by minio-go because of its x-amz- prefix.
const aclHeader = "x-amz-acl"

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
// NCP Object Storage requires path-style addressing, so the client never uses
// virtual-host lookups.
type MinioStorage struct {
	client     *minio.Client
	region     string
	publicBase string
}

// NewMinioStorage creates a MinIO client for the configured endpoint.
func NewMinioStorage(opts Options) (*MinioStorage, error) {
	host, secure := splitEndpoint(opts.Endpoint, opts.UseSSL)
	client, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       secure,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioStorage{
		client:     client,
		region:     opts.Region,
		publicBase: strings.TrimRight(opts.PublicBase, "/"),
	}, nil
}

// EnsureBucket creates bucket when it does not exist yet. The bucket keeps its
// default (private) policy; visibility is granted per object.
func (s *MinioStorage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	log.Info().Str("bucket", bucket).Msg("storage: created bucket")
	return nil
}

// Upload streams obj.Body to the bucket. obj.Size must be the exact byte
// count; minio-go fails the request when the reader comes up short.
func (s *MinioStorage) Upload(ctx context.Context, obj *Object) error {
	putOpts := minio.PutObjectOptions{
		ContentType: obj.ContentType,
	}
	if obj.PublicRead {
		putOpts.UserMetadata = map[string]string{aclHeader: "public-read"}
	}

	_, err := s.client.PutObject(ctx, obj.Bucket, obj.Key, obj.Body, obj.Size, putOpts)
	if err != nil {
		return fmt.Errorf("put object %q: %w", obj.Key, err)
	}
	return nil
}

// PublicURL returns the browser-accessible URL for the given key.
// With STORAGE_PUBLIC_BASE set (a CDN or a bucket-bound base):
// "https://cdn.example.com/original/2025/11/20/<uuid>.jpg".
// Otherwise the client's endpoint in path style:
// "https://kr.object.ncloudstorage.com/<bucket>/original/2025/11/20/<uuid>.jpg".
func (s *MinioStorage) PublicURL(bucket, key string) string {
	if s.publicBase != "" {
		return pathStyleURL(s.publicBase, "", key)
	}
	return pathStyleURL(s.client.EndpointURL().String(), bucket, key)
}
