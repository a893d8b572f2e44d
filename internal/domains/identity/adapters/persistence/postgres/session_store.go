package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// SessionStore persists identity sessions in PostgreSQL.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// sessionRecord maps a session to the identity_sessions table.
type sessionRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UID       string    `gorm:"column:uid;index;size:64"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "identity_sessions" }

// Save upserts a session keyed by id.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if strings.TrimSpace(session.ID) == "" || strings.TrimSpace(session.UID) == "" {
		return errors.New("session id and uid are required")
	}
	rec := sessionRecord{ID: session.ID, UID: session.UID, ExpiresAt: session.ExpiresAt}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"uid", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return apperrors.Network(err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return domain.Session{}, err
	}
	var rec sessionRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, ports.ErrSessionNotFound
		}
		return domain.Session{}, apperrors.Network(err)
	}
	return domain.Session{ID: rec.ID, UID: rec.UID, ExpiresAt: rec.ExpiresAt}, nil
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error; err != nil {
		return apperrors.Network(err)
	}
	return nil
}

// PurgeExpired removes all expired sessions and reports how many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&sessionRecord{})
	if result.Error != nil {
		return 0, apperrors.Network(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
