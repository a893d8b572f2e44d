package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
)

// DefaultSessionTTL bounds how long a token stays valid without a refresh.
const DefaultSessionTTL = 24 * time.Hour

// Service is the local identity provider: accounts, sessions, and tokens.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	clock    clock.Clock
	ttl      time.Duration
	newID    func() string
}

// Option configures the Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSessionTTL overrides DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIDGenerator overrides uuid-based identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		clock:    clock.NewSystem(),
		ttl:      DefaultSessionTTL,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	account, err := domain.NewAccount(s.newID(), input.Email, input.Password, input.DisplayName, s.clock.Now())
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, account.Email); err == nil {
		return nil, mapError(ports.ErrEmailInUse)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, mapError(err)
	}
	return s.startSession(ctx, account.Identity(), s.newID())
}

func (s *Service) SignIn(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	email, err := domain.NormalizeEmail(creds.Email)
	if err != nil {
		return nil, mapError(err)
	}
	if creds.Password == "" {
		return nil, mapError(domain.ErrEmptyPassword)
	}
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.CheckPassword(creds.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(ctx, account.Identity(), s.newID())
}

// Verify resolves a token to its identity. The backing session must still exist.
func (s *Service) Verify(ctx context.Context, token string) (domain.Authenticated, error) {
	claims, err := s.verifyClaims(ctx, token)
	if err != nil {
		return domain.Authenticated{}, err
	}
	return claimsIdentity(claims), nil
}

// Refresh extends the session behind token and issues a replacement token.
func (s *Service) Refresh(ctx context.Context, token string) (*ports.AuthResult, error) {
	claims, err := s.verifyClaims(ctx, token)
	if err != nil {
		return nil, err
	}
	identity := claimsIdentity(claims)
	if account, err := s.repo.GetByUID(ctx, claims.UID); err == nil {
		identity = account.Identity()
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.startSession(ctx, identity, claims.SessionID)
}

// SignOut revokes the session behind token. Unknown or malformed tokens are ignored.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}
	return nil
}

func (s *Service) verifyClaims(ctx context.Context, token string) (ports.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ports.Claims{}, mapError(ports.ErrInvalidToken)
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return ports.Claims{}, mapError(err)
	}
	if session.UID != claims.UID || session.Expired(s.clock.Now()) {
		return ports.Claims{}, mapError(ports.ErrInvalidToken)
	}
	return claims, nil
}

func (s *Service) startSession(ctx context.Context, identity domain.Authenticated, sessionID string) (*ports.AuthResult, error) {
	expiresAt := s.clock.Now().Add(s.ttl)
	if err := s.sessions.Save(ctx, domain.Session{ID: sessionID, UID: identity.UID, ExpiresAt: expiresAt}); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(ports.Claims{
		SessionID:   sessionID,
		UID:         identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

func claimsIdentity(claims ports.Claims) domain.Authenticated {
	return domain.Authenticated{UID: claims.UID, Email: claims.Email, DisplayName: claims.DisplayName}
}

var _ ports.Service = (*Service)(nil)
