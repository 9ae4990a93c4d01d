// Package image validates uploaded images, stores them in object storage, and
// derives their public and optimizer URLs.
package image

import (
	"errors"
	"io"
)

// UploadRequest describes one incoming file. Open is called at most once,
// after validation, and the returned stream is always closed by the service.
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadResult is returned after the object has been written.
type UploadResult struct {
	ObjectURL    string `json:"objectUrl"    example:"https://kr.object.ncloudstorage.com/images/original/2025/11/20/0f8c2a5e-3b1d-4c1e-9a57-6b2f7c0d9e41.jpg"`
	ObjectKey    string `json:"objectKey"    example:"original/2025/11/20/0f8c2a5e-3b1d-4c1e-9a57-6b2f7c0d9e41.jpg"`
	OptimizedURL string `json:"optimizedUrl" example:"https://img.example.com/abc123/original/2025/11/20/0f8c2a5e-3b1d-4c1e-9a57-6b2f7c0d9e41.jpg?type=f&w=300"`
}

// ErrInvalidInput is matched by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ErrStorageWriteFailed is matched when the stream could not be read or the
// object store rejected the write.
var ErrStorageWriteFailed = errors.New("storage write failed")

// ValidationError carries the client-facing reason an upload was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// StorageError wraps the cause of a failed write.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage write failed: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorageWriteFailed) hold.
func (e *StorageError) Is(target error) bool { return target == ErrStorageWriteFailed }

// Validation messages.
const (
	msgEmptyFile = "empty file"
	msgNotImage  = "not an image"
)
