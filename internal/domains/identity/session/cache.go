// Package session holds the process-wide view of who is signed in.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
)

// Provider pushes identity changes to subscribers.
type Provider interface {
	Subscribe(fn func(domain.Identity)) func()
}

// ProviderFunc adapts a subscribe function to Provider.
type ProviderFunc func(fn func(domain.Identity)) func()

func (f ProviderFunc) Subscribe(fn func(domain.Identity)) func() { return f(fn) }

type snapshot struct {
	identity domain.Identity
}

var anonymous = &snapshot{identity: domain.Anonymous{}}

// Cache is updated only by provider callbacks; reads never block.
type Cache struct {
	current     atomic.Pointer[snapshot]
	unsubscribe func()
	closeOnce   sync.Once
	closed      atomic.Bool
}

// NewCache starts Anonymous and subscribes to provider.
func NewCache(provider Provider) *Cache {
	c := &Cache{}
	c.current.Store(anonymous)
	if provider != nil {
		c.unsubscribe = provider.Subscribe(c.update)
	}
	return c
}

// Current returns the latest identity delivered by the provider.
func (c *Cache) Current() domain.Identity {
	return c.current.Load().identity
}

// Authenticated returns the signed-in identity, if any.
func (c *Cache) Authenticated() (domain.Authenticated, bool) {
	return domain.AsAuthenticated(c.Current())
}

// Close unsubscribes and resets to Anonymous. Later callbacks are ignored.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		c.current.Store(anonymous)
	})
}

func (c *Cache) update(identity domain.Identity) {
	if c.closed.Load() {
		return
	}
	if _, ok := domain.AsAuthenticated(identity); !ok {
		c.current.Store(anonymous)
		return
	}
	c.current.Store(&snapshot{identity: identity})
}
