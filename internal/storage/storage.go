// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup:
// the MinIO and AWS SDK implementations work with any S3-compatible provider
// (NCP Object Storage, MinIO, AWS S3), and the in-memory one backs tests.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Storage is the interface for writing objects and resolving their public URLs.
type Storage interface {
	// Upload streams obj.Body to the store under obj.Bucket/obj.Key.
	Upload(ctx context.Context, obj *Object) error
	// PublicURL returns the canonical browser-accessible URL for bucket/key.
	PublicURL(bucket, key string) string
}

// Object describes a single put operation.
type Object struct {
	Bucket string
	Key    string
	Body   io.Reader

	// Size must be the exact number of bytes Body yields.
	Size        int64
	ContentType string

	// PublicRead applies the public-read canned ACL to this object only.
	PublicRead bool
}

// Driver names accepted by New.
const (
	DriverMinio  = "minio"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Options carries the connection settings shared by all drivers.
type Options struct {
	Driver     string
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	PublicBase string
}

// New builds the Storage selected by opts.Driver.
func New(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case "", DriverMinio:
		return NewMinioStorage(opts)
	case DriverS3:
		return NewS3Storage(ctx, opts)
	case DriverMemory:
		return NewMemoryStorage(opts.PublicBase), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// splitEndpoint accepts either "host:port" or a full URL and returns the bare
// host together with whether TLS should be used. An explicit scheme wins over
// useSSL.
func splitEndpoint(endpoint string, useSSL bool) (string, bool) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if strings.Contains(endpoint, "://") {
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			return u.Host, u.Scheme == "https"
		}
	}
	return endpoint, useSSL
}

// pathStyleURL joins base, bucket and key the way path-style S3 addressing
// does. Key segments are escaped individually so that "/" separators survive.
func pathStyleURL(base, bucket, key string) string {
	base = strings.TrimRight(base, "/")
	if bucket != "" {
		base += "/" + url.PathEscape(bucket)
	}
	return base + "/" + escapeKey(key)
}

func escapeKey(key string) string {
	return (&url.URL{Path: strings.TrimLeft(key, "/")}).EscapedPath()
}
