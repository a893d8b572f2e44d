package domain

import "time"

// Session is a server-side record backing an issued token. Revoking the
// session invalidates every token minted for it.
type Session struct {
	ID        string
	UID       string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
