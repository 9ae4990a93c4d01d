package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// StoredObject is a snapshot of an object held by MemoryStorage.
type StoredObject struct {
	Data        []byte
	ContentType string
	PublicRead  bool
}

// MemoryStorage keeps objects in process memory. It backs tests and the
// "memory" driver for local development without an object store.
type MemoryStorage struct {
	mu         sync.Mutex
	objects    map[string]StoredObject
	publicBase string
}

// NewMemoryStorage returns an empty store whose public URLs are rooted at
// publicBase.
func NewMemoryStorage(publicBase string) *MemoryStorage {
	if publicBase == "" {
		publicBase = "http://localhost:8080/objects"
	}
	return &MemoryStorage{
		objects:    make(map[string]StoredObject),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Upload reads obj.Body to completion and stores a copy. A body that yields
// fewer or more bytes than obj.Size is rejected and nothing is stored.
func (m *MemoryStorage) Upload(ctx context.Context, obj *Object) error {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(obj.Body, obj.Size+1))
	if err != nil {
		return fmt.Errorf("read object %q: %w", obj.Key, err)
	}
	if n != obj.Size {
		return fmt.Errorf("object %q: read %d bytes, want %d", obj.Key, n, obj.Size)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[obj.Bucket+"/"+obj.Key] = StoredObject{
		Data:        buf.Bytes(),
		ContentType: obj.ContentType,
		PublicRead:  obj.PublicRead,
	}
	return nil
}

// PublicURL returns publicBase/bucket/key.
func (m *MemoryStorage) PublicURL(bucket, key string) string {
	return pathStyleURL(m.publicBase, bucket, key)
}

// Object returns the stored object for assertions.
func (m *MemoryStorage) Object(bucket, key string) (StoredObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[bucket+"/"+key]
	if !ok {
		return StoredObject{}, false
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return obj, true
}

// Len reports how many objects are stored.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
