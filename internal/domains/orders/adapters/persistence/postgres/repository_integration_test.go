//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/platform/postgres/pgtest"
)

func newOrder(t *testing.T, id, userID string, createdAt time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "p-1", "Gamepad", decimal.RequireFromString("1499.50"), 2,
		domain.Buyer{UserID: userID, UserName: "Player", UserEmail: userID + "@gamerz.test"},
		domain.Details{ReceiverName: "Player", Phone: "9999999999", Address: "12 Arcade Lane", UTR: "UTR" + id},
		"https://cdn.test/shot.png", createdAt)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	db := pgtest.Start(t)

	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, "o-1", "u-1", time.Now().UTC().Truncate(time.Microsecond))
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2999").Equal(fetched.Amount))
	assert.Equal(t, domain.StatusPending, fetched.Status)
	assert.Equal(t, order.CreatedAt, fetched.CreatedAt)
}

func TestRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	db := pgtest.Start(t)

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, newOrder(t, "o-1", "u-1", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, "o-1", domain.StatusPending, domain.StatusVerified))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "o-1", domain.StatusPending, domain.StatusRejected), ports.ErrStaleStatus)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.StatusPending, domain.StatusRejected), ports.ErrNotFound)

	fetched, err := repo.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, fetched.Status)
}

func TestRepository_ListByUserAndDelete(t *testing.T) {
	db := pgtest.Start(t)

	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 4; i++ {
		user := "u-1"
		if i%2 == 1 {
			user = "u-2"
		}
		_, err := repo.Save(ctx, newOrder(t, fmt.Sprintf("o-%d", i), user, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	mine, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, repo.Delete(ctx, "o-0"))
	assert.ErrorIs(t, repo.Delete(ctx, "o-0"), ports.ErrNotFound)
}

func TestIdempotencyStore_SaveIsFirstWriterWins(t *testing.T) {
	db := pgtest.Start(t)

	store := NewIdempotencyStore(db)
	ctx := context.Background()

	missing, err := store.Get(ctx, "u-1:k-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := ports.IdempotencyRecord{Key: "u-1:k-1", RequestHash: "hash-a", OrderID: "o-1", CreatedAt: time.Now()}
	_, err = store.Save(ctx, first)
	require.NoError(t, err)

	again, err := store.Save(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "o-1", again.OrderID)

	stored, err := store.Save(ctx, ports.IdempotencyRecord{Key: "u-1:k-1", RequestHash: "hash-b", OrderID: "o-2", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, stored)
	assert.Equal(t, "o-1", stored.OrderID)
}
