package console

import (
	"context"
	"sync"
	"time"

	catalogtypes "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	catalogdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	catalogports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/ports"
	identityapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/application"
	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	identityports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/session"
	ordertypes "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	orderdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	orderports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
)

type (
	ProductDelta = Delta[*catalogdomain.Product]
	OrderDelta   = Delta[*orderdomain.Order]
)

// Console is one signed-in user's client. Listings are stale until Refresh and
// change locally only through the deltas of this console's own writes.
type Console struct {
	auth    *identityapp.AuthClient
	session *session.Cache
	gate    authz.Authorizer
	catalog catalogports.Service
	orders  orderports.Service

	mu          sync.RWMutex
	products    Listing[*catalogdomain.Product]
	myOrders    Listing[*orderdomain.Order]
	allOrders   Listing[*orderdomain.Order]
	owner       string
	unsubscribe func()
}

// New wires a console to the identity provider and the domain services.
func New(auth *identityapp.AuthClient, catalog catalogports.Service, orders orderports.Service, gate authz.Authorizer) *Console {
	c := &Console{
		auth:      auth,
		gate:      gate,
		catalog:   catalog,
		orders:    orders,
		products:  productListing(nil),
		myOrders:  orderListing(nil),
		allOrders: orderListing(nil),
	}
	c.session = session.NewCache(auth)
	c.unsubscribe = auth.Subscribe(c.onIdentity)
	return c
}

// Close detaches from the identity provider.
func (c *Console) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.session.Close()
}

// Identity is the currently signed-in identity.
func (c *Console) Identity() identity.Identity {
	return c.session.Current()
}

// IsAdmin reports whether the current identity may mutate the catalog and the ledger.
func (c *Console) IsAdmin() bool {
	return c.gate.IsAuthorized(c.session.Current())
}

func (c *Console) SignUp(ctx context.Context, input identityports.RegisterInput) (identity.Authenticated, error) {
	return c.auth.SignUp(ctx, input)
}

func (c *Console) SignIn(ctx context.Context, creds identityports.Credentials) (identity.Authenticated, error) {
	return c.auth.SignIn(ctx, creds)
}

func (c *Console) SignOut(ctx context.Context) error {
	return c.auth.SignOut(ctx)
}

// Refresh reloads every listing the current identity may see.
func (c *Console) Refresh(ctx context.Context) error {
	actor := c.session.Current()
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	mine := orderListing(nil)
	if user, ok := identity.AsAuthenticated(actor); ok {
		orders, err := c.orders.ListOrdersForUser(ctx, user.UID)
		if err != nil {
			return err
		}
		mine = orderListing(orders)
	}
	all := orderListing(nil)
	if c.gate.IsAuthorized(actor) {
		orders, err := c.orders.ListAllOrders(ctx, actor)
		if err != nil {
			return err
		}
		all = orderListing(orders)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = productListing(products)
	mineOK, allOK := c.stillCurrent(actor)
	if mineOK {
		c.myOrders = mine
	}
	if allOK {
		c.allOrders = all
	}
	return nil
}

func (c *Console) Products() []*catalogdomain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products.Items()
}

func (c *Console) MyOrders() []*orderdomain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.myOrders.Items()
}

func (c *Console) AllOrders() []*orderdomain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.allOrders.Items()
}

func (c *Console) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (ProductDelta, error) {
	product, err := c.catalog.CreateProduct(ctx, c.session.Current(), input)
	if err != nil {
		return ProductDelta{}, err
	}
	return c.applyProduct(ProductDelta{Kind: Insert, ID: product.ID, Record: product}), nil
}

func (c *Console) UpdateProduct(ctx context.Context, input catalogtypes.UpdateProductInput) (ProductDelta, error) {
	product, err := c.catalog.UpdateProduct(ctx, c.session.Current(), input)
	if err != nil {
		return ProductDelta{}, err
	}
	return c.applyProduct(ProductDelta{Kind: Replace, ID: product.ID, Record: product}), nil
}

func (c *Console) DeleteProduct(ctx context.Context, id string) (ProductDelta, error) {
	if err := c.catalog.DeleteProduct(ctx, c.session.Current(), id); err != nil {
		return ProductDelta{}, err
	}
	return c.applyProduct(ProductDelta{Kind: Remove, ID: id}), nil
}

func (c *Console) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (OrderDelta, error) {
	actor := c.session.Current()
	order, err := c.orders.CreateOrder(ctx, actor, input)
	if err != nil {
		return OrderDelta{}, err
	}
	d := OrderDelta{Kind: Insert, ID: order.ID, Record: order}
	c.applyOrder(actor, d)
	return d, nil
}

func (c *Console) UpdateOrderStatus(ctx context.Context, id, status string) (OrderDelta, error) {
	actor := c.session.Current()
	order, err := c.orders.UpdateStatus(ctx, actor, id, status)
	if err != nil {
		return OrderDelta{}, err
	}
	d := OrderDelta{Kind: Replace, ID: order.ID, Record: order}
	c.applyOrder(actor, d)
	return d, nil
}

func (c *Console) DeleteOrder(ctx context.Context, id string) (OrderDelta, error) {
	actor := c.session.Current()
	if err := c.orders.DeleteOrder(ctx, actor, id); err != nil {
		return OrderDelta{}, err
	}
	d := OrderDelta{Kind: Remove, ID: id}
	c.applyOrder(actor, d)
	return d, nil
}

func (c *Console) applyProduct(d ProductDelta) ProductDelta {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = Reduce(c.products, d)
	return d
}

// applyOrder patches the listings actor could see, unless the identity has
// changed since actor was read.
func (c *Console) applyOrder(actor identity.Identity, d OrderDelta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mineOK, allOK := c.stillCurrent(actor)
	if mineOK {
		c.myOrders = Reduce(c.myOrders, d)
	}
	if allOK {
		c.allOrders = Reduce(c.allOrders, d)
	}
}

// stillCurrent reports which order listings a result fetched as actor may
// still be written to. Callers hold c.mu; onIdentity updates c.owner under it.
func (c *Console) stillCurrent(actor identity.Identity) (mine, all bool) {
	user, ok := identity.AsAuthenticated(actor)
	if !ok || user.UID != c.owner {
		return false, false
	}
	current := c.session.Current()
	return true, c.gate.IsAuthorized(actor) && c.gate.IsAuthorized(current)
}

// onIdentity drops order listings that belonged to a previous identity.
func (c *Console) onIdentity(id identity.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	user, _ := identity.AsAuthenticated(id)
	if user.UID != c.owner {
		c.owner = user.UID
		c.myOrders = orderListing(nil)
	}
	if !c.gate.IsAuthorized(id) {
		c.allOrders = orderListing(nil)
	}
}

func productListing(products []*catalogdomain.Product) Listing[*catalogdomain.Product] {
	return NewListing(products,
		func(p *catalogdomain.Product) string { return p.ID },
		func(p *catalogdomain.Product) time.Time { return p.CreatedAt })
}

func orderListing(orders []*orderdomain.Order) Listing[*orderdomain.Order] {
	return NewListing(orders,
		func(o *orderdomain.Order) string { return o.ID },
		func(o *orderdomain.Order) time.Time { return o.CreatedAt })
}
