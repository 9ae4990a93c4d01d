package image

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imageplatform/api/internal/metrics"
	"github.com/imageplatform/api/internal/storage"
)

// Config holds the settings the service needs per upload.
type Config struct {
	Bucket     string
	BaseFolder string

	OptimizerDomain    string
	OptimizerProjectID string
	OptimizerQuery     string

	// UploadTimeout bounds the store write; zero means no limit beyond the
	// caller's context.
	UploadTimeout time.Duration
}

// Service contains the upload logic. It holds no mutable state, so a single
// instance serves concurrent requests.
type Service struct {
	store    storage.Storage
	cfg      Config
	logger   zerolog.Logger
	observer metrics.Observer
	now      func() time.Time
	newID    func() string
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for upload events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithObserver reports store writes to o.
func WithObserver(o metrics.Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithClock replaces time.Now for the date partition of object keys.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a new image Service writing to store.
func NewService(store storage.Storage, cfg Config, opts ...Option) *Service {
	s := &Service{
		store:    store,
		cfg:      cfg,
		logger:   zerolog.Nop(),
		observer: metrics.Nop{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates req, writes it under a fresh object key with public-read
// visibility, and returns the object's URLs. A result is only returned once
// the write has succeeded; failures are never retried.
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	key := ObjectKey(s.cfg.BaseFolder, s.now(), s.newID(), req.Filename)

	if err := s.put(ctx, key, req); err != nil {
		s.logger.Error().Err(err).Str("key", key).Int64("size", req.Size).Msg("image upload failed")
		return nil, err
	}

	result := &UploadResult{
		ObjectURL:    s.store.PublicURL(s.cfg.Bucket, key),
		ObjectKey:    key,
		OptimizedURL: OptimizerURL(s.cfg.OptimizerDomain, s.cfg.OptimizerProjectID, key, s.cfg.OptimizerQuery),
	}
	s.logger.Info().Str("key", key).Int64("size", req.Size).Str("content_type", req.ContentType).Msg("image uploaded")
	return result, nil
}

func validate(req *UploadRequest) error {
	if req == nil || req.Size <= 0 {
		return &ValidationError{Message: msgEmptyFile}
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return &ValidationError{Message: msgNotImage}
	}
	return nil
}

func (s *Service) put(ctx context.Context, key string, req *UploadRequest) error {
	if req.Open == nil {
		return &StorageError{Err: errors.New("upload has no content")}
	}
	body, err := req.Open()
	if err != nil {
		return &StorageError{Err: fmt.Errorf("open upload stream: %w", err)}
	}
	defer body.Close()

	if s.cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.UploadTimeout)
		defer cancel()
	}

	start := time.Now()
	err = s.store.Upload(ctx, &storage.Object{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        body,
		Size:        req.Size,
		ContentType: req.ContentType,
		PublicRead:  true,
	})
	s.observer.RecordUpload(time.Since(start), req.Size, err)
	if err != nil {
		return &StorageError{Err: err}
	}
	return nil
}
