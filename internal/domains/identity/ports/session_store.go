package ports

import (
	"context"
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session persistence backing issued tokens.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
