package ports

import (
	"context"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
)

// RegisterInput carries sign-up fields.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Credentials carries sign-in fields.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult is returned by every call that starts or extends a session.
type AuthResult struct {
	Identity  domain.Authenticated
	Token     string
	ExpiresAt time.Time
}

// Service exposes identity provider use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	SignIn(ctx context.Context, creds Credentials) (*AuthResult, error)
	Verify(ctx context.Context, token string) (domain.Authenticated, error)
	Refresh(ctx context.Context, token string) (*AuthResult, error)
	SignOut(ctx context.Context, token string) error
}
