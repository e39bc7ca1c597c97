package storage

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type memoryObject struct {
	data     []byte
	mimeType string
}

// MemoryStorage keeps objects in a map. Used by tests and local setups
// without a bucket.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	// PutErr, when set, makes the next Put fail. Tests use it to drive
	// the rollback paths.
	PutErr error
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject)}
}

func (s *MemoryStorage) Put(ctx context.Context, path string, data []byte, visibility Visibility) (string, error) {
	if s.PutErr != nil {
		return "", s.PutErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[path] = memoryObject{
		data:     append([]byte(nil), data...),
		mimeType: http.DetectContentType(data),
	}
	return path, nil
}

func (s *MemoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[path]
	return ok, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, path)
	return nil
}

func (s *MemoryStorage) TemporaryURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[path]; !ok {
		return "", fmt.Errorf("object not found: %s", path)
	}
	return fmt.Sprintf("memory://%s?expires=%d", path, time.Now().Add(ttl).Unix()), nil
}

func (s *MemoryStorage) Size(ctx context.Context, path string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[path]
	if !ok {
		return 0, fmt.Errorf("object not found: %s", path)
	}
	return int64(len(obj.data)), nil
}

func (s *MemoryStorage) MimeType(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[path]
	if !ok {
		return "", fmt.Errorf("object not found: %s", path)
	}
	return obj.mimeType, nil
}

// Len reports how many objects are stored. Test helper.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
