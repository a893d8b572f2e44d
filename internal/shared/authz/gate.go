// Package authz decides which identities may mutate the catalog and the order ledger.
package authz

import (
	"strings"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// Authorizer is what mutating services consult before any side effect.
type Authorizer interface {
	IsAuthorized(identity domain.Identity) bool
	Authorize(identity domain.Identity) error
}

var _ Authorizer = (*Gate)(nil)

// Gate grants admin rights to exactly one configured email address.
type Gate struct {
	adminEmail string
}

// NewGate captures the admin address once. An empty address authorizes nobody.
func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: normalize(adminEmail)}
}

// IsAuthorized reports whether identity is the admin. Comparison ignores case and surrounding whitespace.
func (g *Gate) IsAuthorized(identity domain.Identity) bool {
	if g == nil || g.adminEmail == "" {
		return false
	}
	auth, ok := domain.AsAuthenticated(identity)
	if !ok {
		return false
	}
	return normalize(auth.Email) == g.adminEmail
}

// Authorize returns nil for the admin, ErrUnauthenticated for anonymous callers,
// and ErrAuthorization for everyone else.
func (g *Gate) Authorize(identity domain.Identity) error {
	if _, ok := domain.AsAuthenticated(identity); !ok {
		return apperrors.ErrUnauthenticated
	}
	if !g.IsAuthorized(identity) {
		return apperrors.ErrAuthorization
	}
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
