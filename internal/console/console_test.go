package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application"
	catalogtypes "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	identitymemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/memory"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/token"
	identityapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/application"
	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	identityports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	ordermemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/memory"
	orderapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application"
	ordertypes "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	orderdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	orderports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	uploadmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/memory"
	uploadapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/application"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
)

const adminEmail = "owner@gamerz.test"

type stack struct {
	identity *identityapp.Service
	catalog  *catalogapp.Service
	orders   *orderapp.Service
	gate     *authz.Gate
}

func newStack(t *testing.T) stack {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret-with-enough-length")
	require.NoError(t, err)
	gate := authz.NewGate(adminEmail)
	uploads := uploadapp.NewCoordinator(uploadmemory.NewBlobStore("https://cdn.test"))
	clk := clock.NewStepping(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), time.Second)
	catalog := catalogapp.NewService(catalogmemory.NewRepository(), uploads, gate, catalogapp.WithClock(clk))
	return stack{
		identity: identityapp.NewService(identitymemory.NewRepository(), identitymemory.NewSessionStore(), issuer),
		catalog:  catalog,
		orders:   orderapp.NewService(ordermemory.NewRepository(), catalog, uploads, gate, orderapp.WithClock(clk)),
		gate:     gate,
	}
}

func (s stack) console(t *testing.T) *Console {
	t.Helper()
	c := New(identityapp.NewAuthClient(s.identity), s.catalog, s.orders, s.gate)
	t.Cleanup(c.Close)
	return c
}

func png(name string) uploaddomain.File {
	return uploaddomain.File{Name: name, ContentType: "image/png", Data: []byte(name)}
}

func productInput(name string) catalogtypes.CreateProductInput {
	return catalogtypes.CreateProductInput{
		Name:      name,
		Price:     "499",
		QRCodeURL: "https://pay.test/qr.png",
		Images:    []uploaddomain.File{png(name + ".png")},
	}
}

func orderInput(productID string) ordertypes.PlaceOrderInput {
	shot := png("shot.png")
	return ordertypes.PlaceOrderInput{
		ProductID:    productID,
		ReceiverName: "Player",
		Phone:        "9999999999",
		Address:      "12 Arcade Lane",
		UTR:          "UTR42",
		Screenshot:   &shot,
	}
}

func TestConsole_AdminFlow(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	adminConsole := s.console(t)

	_, err := adminConsole.SignUp(ctx, identityports.RegisterInput{Email: adminEmail, Password: "hunter22", DisplayName: "Owner"})
	require.NoError(t, err)
	assert.True(t, adminConsole.IsAdmin())

	first, err := adminConsole.CreateProduct(ctx, productInput("Mouse"))
	require.NoError(t, err)
	assert.Equal(t, Insert, first.Kind)
	second, err := adminConsole.CreateProduct(ctx, productInput("Keyboard"))
	require.NoError(t, err)

	products := adminConsole.Products()
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)

	name := "Gaming Mouse"
	updated, err := adminConsole.UpdateProduct(ctx, catalogtypes.UpdateProductInput{ID: first.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, Replace, updated.Kind)
	assert.Equal(t, "Gaming Mouse", adminConsole.Products()[1].Name)

	removed, err := adminConsole.DeleteProduct(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, Remove, removed.Kind)
	assert.Len(t, adminConsole.Products(), 1)
}

func TestConsole_CustomerCannotMutateCatalog(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	c := s.console(t)

	_, err := c.SignUp(ctx, identityports.RegisterInput{Email: "player@gamerz.test", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, c.IsAdmin())

	_, err = c.CreateProduct(ctx, productInput("Mouse"))
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	assert.Empty(t, c.Products())
}

func TestConsole_OrdersFollowTheSignedInUser(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	admin := s.console(t)
	_, err := admin.SignUp(ctx, identityports.RegisterInput{Email: adminEmail, Password: "hunter22"})
	require.NoError(t, err)
	product, err := admin.CreateProduct(ctx, productInput("Mouse"))
	require.NoError(t, err)

	buyer := s.console(t)
	_, err = buyer.SignUp(ctx, identityports.RegisterInput{Email: "player@gamerz.test", Password: "secret1"})
	require.NoError(t, err)
	placed, err := buyer.PlaceOrder(ctx, orderInput(product.ID))
	require.NoError(t, err)
	require.Len(t, buyer.MyOrders(), 1)
	assert.Empty(t, buyer.AllOrders())

	assert.Empty(t, admin.AllOrders(), "stale until refresh")
	require.NoError(t, admin.Refresh(ctx))
	require.Len(t, admin.AllOrders(), 1)

	verified, err := admin.UpdateOrderStatus(ctx, placed.ID, "verified")
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusVerified, verified.Record.Status)
	assert.Equal(t, orderdomain.StatusVerified, admin.AllOrders()[0].Status)
	assert.Equal(t, orderdomain.StatusPending, buyer.MyOrders()[0].Status, "other sessions are not synchronized")

	require.NoError(t, buyer.Refresh(ctx))
	assert.Equal(t, orderdomain.StatusVerified, buyer.MyOrders()[0].Status)

	require.NoError(t, buyer.SignOut(ctx))
	assert.Equal(t, identity.Anonymous{}, buyer.Identity())
	assert.Empty(t, buyer.MyOrders())
}

// signOutDuringList signs the console out while a listing is in flight.
type signOutDuringList struct {
	orderports.Service
	auth *identityapp.AuthClient
}

func (s signOutDuringList) ListOrdersForUser(ctx context.Context, userID string) ([]*orderdomain.Order, error) {
	orders, err := s.Service.ListOrdersForUser(ctx, userID)
	_ = s.auth.SignOut(ctx)
	return orders, err
}

func (s signOutDuringList) ListAllOrders(ctx context.Context, actor identity.Identity) ([]*orderdomain.Order, error) {
	orders, err := s.Service.ListAllOrders(ctx, actor)
	_ = s.auth.SignOut(ctx)
	return orders, err
}

func TestConsole_RefreshDropsListingsOfSignedOutUser(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	admin := s.console(t)
	_, err := admin.SignUp(ctx, identityports.RegisterInput{Email: adminEmail, Password: "hunter22"})
	require.NoError(t, err)
	product, err := admin.CreateProduct(ctx, productInput("Mouse"))
	require.NoError(t, err)

	buyer := s.console(t)
	_, err = buyer.SignUp(ctx, identityports.RegisterInput{Email: "player@gamerz.test", Password: "secret1"})
	require.NoError(t, err)
	_, err = buyer.PlaceOrder(ctx, orderInput(product.ID))
	require.NoError(t, err)

	auth := identityapp.NewAuthClient(s.identity)
	racing := New(auth, s.catalog, signOutDuringList{Service: s.orders, auth: auth}, s.gate)
	t.Cleanup(racing.Close)

	_, err = racing.SignIn(ctx, identityports.Credentials{Email: "player@gamerz.test", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, racing.Refresh(ctx))

	assert.Equal(t, identity.Anonymous{}, racing.Identity())
	assert.Empty(t, racing.MyOrders())
	assert.Len(t, racing.Products(), 1)

	_, err = racing.SignIn(ctx, identityports.Credentials{Email: adminEmail, Password: "hunter22"})
	require.NoError(t, err)
	require.NoError(t, racing.Refresh(ctx))

	assert.Equal(t, identity.Anonymous{}, racing.Identity())
	assert.Empty(t, racing.AllOrders())
}
