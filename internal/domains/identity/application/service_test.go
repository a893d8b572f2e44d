package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/memory"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/token"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
)

type mutableClock struct{ now time.Time }

func (c *mutableClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, c clock.Clock) *Service {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret", token.WithClock(c))
	require.NoError(t, err)
	seq := 0
	return NewService(memory.NewRepository(), memory.NewSessionStore(), issuer,
		WithClock(c),
		WithSessionTTL(time.Hour),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func TestRegisterThenSignIn(t *testing.T) {
	c := &mutableClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, c)
	ctx := context.Background()

	registered, err := svc.Register(ctx, ports.RegisterInput{Email: "Buyer@Shop.io", Password: "secret1", DisplayName: "Buyer"})
	require.NoError(t, err)
	assert.Equal(t, "buyer@shop.io", registered.Identity.Email)
	assert.NotEmpty(t, registered.Token)

	signedIn, err := svc.SignIn(ctx, ports.Credentials{Email: "buyer@shop.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.Identity.UID, signedIn.Identity.UID)

	identity, err := svc.Verify(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, "Buyer", identity.DisplayName)
}

func TestRegister_RejectsDuplicatesAndWeakPasswords(t *testing.T) {
	svc := newTestService(t, clock.NewSystem())
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, ports.RegisterInput{Email: "A@B.C", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorIs(t, err, ports.ErrEmailInUse)

	_, err = svc.Register(ctx, ports.RegisterInput{Email: "x@b.c", Password: "123"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	svc := newTestService(t, clock.NewSystem())
	ctx := context.Background()
	_, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, ports.Credentials{Email: "a@b.c", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.SignIn(ctx, ports.Credentials{Email: "nobody@b.c", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut_RevokesToken(t *testing.T) {
	svc := newTestService(t, clock.NewSystem())
	ctx := context.Background()
	result, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, result.Token))

	_, err = svc.Verify(ctx, result.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.NoError(t, svc.SignOut(ctx, "garbage"))
}

func TestRefresh_ExtendsSession(t *testing.T) {
	c := &mutableClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(t, c)
	ctx := context.Background()
	result, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	c.now = c.now.Add(50 * time.Minute)
	refreshed, err := svc.Refresh(ctx, result.Token)
	require.NoError(t, err)
	assert.True(t, refreshed.ExpiresAt.After(result.ExpiresAt))

	c.now = c.now.Add(30 * time.Minute)
	_, err = svc.Verify(ctx, result.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	_, err = svc.Verify(ctx, refreshed.Token)
	assert.NoError(t, err)
}
