package imagestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/agrivision/agrivision/internal/domain/session"
)

type storedImage struct {
	data     []byte
	mimeType string
}

// MemoryStore keeps images in process memory. Default when no object storage
// is configured; images then live exactly as long as the session.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]storedImage
}

// NewMemoryStore constructs storage.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[string]storedImage)}
}

// Put stores image bytes under the key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[key] = storedImage{data: data, mimeType: mimeType}
	return nil
}

// Get returns the stored image bytes.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[key]
	if !ok {
		return nil, "", fmt.Errorf("image not found: %s", key)
	}
	return img.data, img.mimeType, nil
}

// Delete removes the stored image.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, key)
	return nil
}

var _ session.ImageStore = (*MemoryStore)(nil)
