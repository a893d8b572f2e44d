package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store.
type Repository struct {
	mu      sync.RWMutex
	byUID   map[string]*domain.Account
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{byUID: map[string]*domain.Account{}, byEmail: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, account *domain.Account) error {
	if account == nil {
		return errors.New("account is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return ports.ErrEmailInUse
	}
	clone := cloneAccount(account)
	r.byUID[clone.UID] = clone
	r.byEmail[clone.Email] = clone.UID
	return nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uid, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneAccount(r.byUID[uid]), nil
}

func (r *Repository) GetByUID(_ context.Context, uid string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.byUID[uid]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneAccount(account), nil
}

func cloneAccount(account *domain.Account) *domain.Account {
	clone := *account
	clone.PasswordHash = append([]byte(nil), account.PasswordHash...)
	return &clone
}
