//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/platform/postgres/pgtest"
)

func TestRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account, err := domain.NewAccount("u-1", "Player@Gamerz.test", "secret1", "Player", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	twin, err := domain.NewAccount("u-2", "player@gamerz.test", "secret2", "Twin", time.Now().UTC())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, twin), ports.ErrEmailInUse)

	fetched, err := repo.GetByEmail(ctx, "player@gamerz.test")
	require.NoError(t, err)
	assert.Equal(t, "u-1", fetched.UID)
	assert.True(t, fetched.CheckPassword("secret1"))

	_, err = repo.GetByUID(ctx, "u-404")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_SaveGetDeleteAndPurge(t *testing.T) {
	db := pgtest.Start(t)
	store := NewSessionStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "s-live", UID: "u-1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.Session{ID: "s-old", UID: "u-1", ExpiresAt: now.Add(-time.Hour)}))

	live, err := store.Get(ctx, "s-live")
	require.NoError(t, err)
	assert.Equal(t, "u-1", live.UID)

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
	_, err = store.Get(ctx, "s-old")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "s-live"))
	_, err = store.Get(ctx, "s-live")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}
