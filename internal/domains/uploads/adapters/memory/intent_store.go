package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
)

var _ ports.IntentStore = (*IntentStore)(nil)

// IntentStore is an in-memory IntentStore implementation.
type IntentStore struct {
	mu      sync.Mutex
	intents map[string]time.Time
}

func NewIntentStore() *IntentStore {
	return &IntentStore{intents: map[string]time.Time{}}
}

func (s *IntentStore) Record(_ context.Context, intent domain.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[intent.URL] = intent.CreatedAt
	return nil
}

func (s *IntentStore) Commit(_ context.Context, urls ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, url := range urls {
		delete(s.intents, url)
	}
	return nil
}

func (s *IntentStore) Expired(_ context.Context, before time.Time, limit int) ([]domain.Intent, error) {
	s.mu.Lock()
	var out []domain.Intent
	for url, createdAt := range s.intents {
		if createdAt.Before(before) {
			out = append(out, domain.Intent{URL: url, CreatedAt: createdAt})
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Pending reports how many intents are still uncommitted.
func (s *IntentStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intents)
}
