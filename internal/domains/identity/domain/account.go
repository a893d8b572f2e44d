package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength mirrors the provider's weak-password threshold.
const MinPasswordLength = 6

var (
	ErrEmptyEmail      = errors.New("email is required")
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrEmptyPassword   = errors.New("password is required")
	ErrWeakPassword    = errors.New("password should be at least 6 characters")
	ErrInvalidUID      = errors.New("uid is required")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// Account is a registered user of the identity provider.
type Account struct {
	UID          string
	Email        string
	DisplayName  string
	PasswordHash []byte
	CreatedAt    time.Time
}

// NewAccount validates the credentials and hashes the password.
func NewAccount(uid, email, password, displayName string, createdAt time.Time) (*Account, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, ErrInvalidUID
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	account := &Account{
		UID:         uid,
		Email:       normalized,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   createdAt,
	}
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}
	return account, nil
}

// NormalizeEmail trims, lowercases, and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// SetPassword validates strength and stores a bcrypt hash.
func (a *Account) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword compares the stored hash with the supplied credentials.
func (a *Account) CheckPassword(password string) bool {
	if a == nil || len(a.PasswordHash) == 0 || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) == nil
}

// Identity projects the account into the authenticated identity.
func (a *Account) Identity() Authenticated {
	return Authenticated{UID: a.UID, Email: a.Email, DisplayName: a.DisplayName}
}
