package memory

import (
	"context"
	"sync"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.ID, session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return domain.Session{}, ports.ErrSessionNotFound
	}
	return value.(domain.Session), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}
