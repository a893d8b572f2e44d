package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
)

var _ ports.BlobStore = (*BlobStore)(nil)

// BlobStore keeps uploaded payloads in memory and hands out stable URLs under baseURL.
type BlobStore struct {
	baseURL string
	mu      sync.RWMutex
	objects map[string]domain.File
}

func NewBlobStore(baseURL string) *BlobStore {
	if baseURL == "" {
		baseURL = "memory://blobs"
	}
	return &BlobStore{baseURL: baseURL, objects: map[string]domain.File{}}
}

func (s *BlobStore) Put(_ context.Context, file domain.File) (string, error) {
	location := fmt.Sprintf("%s/%s/%s", s.baseURL, uuid.NewString(), url.PathEscape(file.Name))
	clone := file
	clone.Data = append([]byte(nil), file.Data...)
	s.mu.Lock()
	s.objects[location] = clone
	s.mu.Unlock()
	return location, nil
}

func (s *BlobStore) Delete(_ context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[location]; !ok {
		return domain.ErrBlobNotFound
	}
	delete(s.objects, location)
	return nil
}

// Get returns a stored payload.
func (s *BlobStore) Get(location string) (domain.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.objects[location]
	return file, ok
}

// Len reports how many blobs are stored.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
