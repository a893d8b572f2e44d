package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
)

func TestIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer("s3cret", WithClock(clock.NewFixed(now)))
	require.NoError(t, err)

	raw, err := issuer.Issue(ports.Claims{SessionID: "sid-1", UID: "u-1", Email: "a@b.c", DisplayName: "A", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "u-1", claims.UID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "A", claims.DisplayName)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer("s3cret", WithClock(clock.NewFixed(now)))
	require.NoError(t, err)

	expired, err := issuer.Issue(ports.Claims{SessionID: "sid", UID: "u", ExpiresAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	other, err := NewIssuer("other-secret", WithClock(clock.NewFixed(now)))
	require.NoError(t, err)
	foreign, err := other.Issue(ports.Claims{SessionID: "sid", UID: "u", ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = issuer.Parse("")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer("  ")
	assert.Error(t, err)
}
