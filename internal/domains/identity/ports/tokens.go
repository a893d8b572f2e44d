package ports

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// Claims is the payload carried by an issued token.
type Claims struct {
	SessionID   string
	UID         string
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
	Parse(token string) (Claims, error)
}
