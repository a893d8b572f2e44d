package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// KeySession maps identity:session:{session_id} -> {"uid": "...", "expires_at": "..."}
const KeySession = "identity:session:%s"

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in Redis and lets key expiry reap them.
type SessionStore struct {
	rdb goredis.UniversalClient
	now func() time.Time
}

func NewSessionStore(rdb goredis.UniversalClient) *SessionStore {
	return &SessionStore{rdb: rdb, now: time.Now}
}

type sessionValue struct {
	UID       string    `json:"uid"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if s == nil || s.rdb == nil {
		return errors.New("redis session store not configured")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sessionValue{UID: session.UID, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(session.ID), payload, ttl).Err(); err != nil {
		return apperrors.Network(fmt.Errorf("save session: %w", err))
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if s == nil || s.rdb == nil {
		return domain.Session{}, errors.New("redis session store not configured")
	}
	raw, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Session{}, ports.ErrSessionNotFound
		}
		return domain.Session{}, apperrors.Network(fmt.Errorf("load session: %w", err))
	}
	var value sessionValue
	if err := json.Unmarshal(raw, &value); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return domain.Session{ID: id, UID: value.UID, ExpiresAt: value.ExpiresAt}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.rdb == nil {
		return errors.New("redis session store not configured")
	}
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return apperrors.Network(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

func key(id string) string {
	return fmt.Sprintf(KeySession, id)
}
