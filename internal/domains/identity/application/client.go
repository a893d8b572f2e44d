package application

import (
	"context"
	"errors"
	"sync"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// AuthClient is one caller's view of the identity provider. It holds the
// session token and notifies subscribers whenever the signed-in identity changes.
type AuthClient struct {
	service ports.Service

	mu        sync.Mutex
	token     string
	current   domain.Identity
	listeners map[uint64]func(domain.Identity)
	nextID    uint64
}

// NewAuthClient starts signed out.
func NewAuthClient(service ports.Service) *AuthClient {
	return &AuthClient{
		service:   service,
		current:   domain.Anonymous{},
		listeners: map[uint64]func(domain.Identity){},
	}
}

// Subscribe registers fn and immediately delivers the current identity.
// The returned function removes the subscription.
func (c *AuthClient) Subscribe(fn func(domain.Identity)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current := c.current
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *AuthClient) SignUp(ctx context.Context, input ports.RegisterInput) (domain.Authenticated, error) {
	result, err := c.service.Register(ctx, input)
	if err != nil {
		return domain.Authenticated{}, err
	}
	c.set(result.Token, result.Identity)
	return result.Identity, nil
}

func (c *AuthClient) SignIn(ctx context.Context, creds ports.Credentials) (domain.Authenticated, error) {
	result, err := c.service.SignIn(ctx, creds)
	if err != nil {
		return domain.Authenticated{}, err
	}
	c.set(result.Token, result.Identity)
	return result.Identity, nil
}

// SignOut revokes the session and clears the identity even if revocation fails.
func (c *AuthClient) SignOut(ctx context.Context) error {
	token := c.Token()
	c.set("", domain.Anonymous{})
	if token == "" {
		return nil
	}
	return c.service.SignOut(ctx, token)
}

// Refresh extends the session. A rejected token signs the client out.
func (c *AuthClient) Refresh(ctx context.Context) error {
	token := c.Token()
	if token == "" {
		return apperrors.ErrUnauthenticated
	}
	result, err := c.service.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			c.set("", domain.Anonymous{})
		}
		return err
	}
	c.set(result.Token, result.Identity)
	return nil
}

// Token returns the current session token, empty when signed out.
func (c *AuthClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *AuthClient) set(token string, identity domain.Identity) {
	c.mu.Lock()
	c.token = token
	c.current = identity
	listeners := make([]func(domain.Identity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(identity)
	}
}
