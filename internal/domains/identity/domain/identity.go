package domain

import "strings"

// Identity is either Anonymous or Authenticated. Consumers type-switch on it.
type Identity interface {
	isIdentity()
}

// Anonymous is the identity of a caller with no session.
type Anonymous struct{}

func (Anonymous) isIdentity() {}

// Authenticated carries the provider-issued attributes of a signed-in user.
type Authenticated struct {
	UID         string
	Email       string
	DisplayName string
}

func (Authenticated) isIdentity() {}

// AsAuthenticated returns the authenticated variant when id carries one.
func AsAuthenticated(id Identity) (Authenticated, bool) {
	switch v := id.(type) {
	case Authenticated:
		return v, strings.TrimSpace(v.UID) != ""
	case *Authenticated:
		if v == nil {
			return Authenticated{}, false
		}
		return *v, strings.TrimSpace(v.UID) != ""
	default:
		return Authenticated{}, false
	}
}

// NameOr returns the display name or fallback when the identity has none.
func (a Authenticated) NameOr(fallback string) string {
	if name := strings.TrimSpace(a.DisplayName); name != "" {
		return name
	}
	return fallback
}
