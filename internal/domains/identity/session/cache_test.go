package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
)

type fakeProvider struct {
	mu           sync.Mutex
	listener     func(domain.Identity)
	unsubscribed bool
}

func (p *fakeProvider) Subscribe(fn func(domain.Identity)) func() {
	p.mu.Lock()
	p.listener = fn
	p.mu.Unlock()
	fn(domain.Anonymous{})
	return func() {
		p.mu.Lock()
		p.unsubscribed = true
		p.mu.Unlock()
	}
}

func (p *fakeProvider) emit(id domain.Identity) {
	p.mu.Lock()
	fn := p.listener
	p.mu.Unlock()
	fn(id)
}

func TestCache_TracksProviderCallbacks(t *testing.T) {
	provider := &fakeProvider{}
	cache := NewCache(provider)
	assert.Equal(t, domain.Anonymous{}, cache.Current())

	user := domain.Authenticated{UID: "u-1", Email: "a@b.c"}
	provider.emit(user)
	assert.Equal(t, user, cache.Current())
	got, ok := cache.Authenticated()
	assert.True(t, ok)
	assert.Equal(t, "u-1", got.UID)

	provider.emit(domain.Anonymous{})
	assert.Equal(t, domain.Anonymous{}, cache.Current())
}

func TestCache_CloseUnsubscribesAndResets(t *testing.T) {
	provider := &fakeProvider{}
	cache := NewCache(provider)
	provider.emit(domain.Authenticated{UID: "u-1"})

	cache.Close()
	cache.Close()
	assert.True(t, provider.unsubscribed)
	assert.Equal(t, domain.Anonymous{}, cache.Current())

	provider.emit(domain.Authenticated{UID: "u-2"})
	assert.Equal(t, domain.Anonymous{}, cache.Current())
}

func TestCache_NilProviderStaysAnonymous(t *testing.T) {
	cache := NewCache(nil)
	_, ok := cache.Authenticated()
	assert.False(t, ok)
	cache.Close()
}
