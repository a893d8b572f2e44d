//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/rawatr0788-code/Gamerz-Kit/test/pact"

	storefrontserver "github.com/rawatr0788-code/Gamerz-Kit/go"
	catalogmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application"
	catalogdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	identitymemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/memory"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/adapters/token"
	identityapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/application"
	ordermemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/memory"
	orderapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application"
	uploadmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/memory"
	uploadapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/application"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetCatalog(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *catalogmemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	issuer, err := token.NewIssuer("pact-secret-with-enough-length")
	require.NoError(t, err)
	gate := authz.NewGate("owner@pact.test")
	uploads := uploadapp.NewCoordinator(uploadmemory.NewBlobStore("https://cdn.pact"))
	products := catalogmemory.NewRepository()
	catalogService := catalogobs.New(catalogapp.NewService(products, uploads, gate))
	orderService := orderapp.NewService(ordermemory.NewRepository(), catalogService, uploads, gate)
	identityService := identityapp.NewService(identitymemory.NewRepository(), identitymemory.NewSessionStore(), issuer)

	handlers := storefrontserver.ApiHandleFunctions{
		AuthAPI:    storefrontserver.NewAuthAPI(identityService, gate, nil),
		ProductAPI: storefrontserver.NewProductAPI(catalogService),
		OrderAPI:   storefrontserver.NewOrderAPI(orderService),
		AdminAPI:   storefrontserver.NewAdminAPI(orderService, gate, nil, time.Hour),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{products: products, server: server}
}

func (a *contractProviderApp) resetCatalog(t testing.TB) {
	t.Helper()
	products, err := a.products.List(context.Background())
	require.NoError(t, err)
	for _, product := range products {
		_ = a.products.Delete(context.Background(), product.ID)
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	product, err := catalogdomain.NewProduct(
		pacttest.ExistingProductID,
		pacttest.ExampleProductName,
		decimal.RequireFromString(pacttest.ExampleProductPrice),
		"Closed-back gaming headset",
		[]string{"audio"},
		pacttest.ExampleQRCodeURL,
		[]string{pacttest.ExampleImageURL},
		time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	_, err = a.products.Save(context.Background(), product)
	require.NoError(t, err)
}
