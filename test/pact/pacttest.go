//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogEmpty   = "the catalog is empty"
	StateProductExists  = "product p-101 exists"
	StateProductMissing = "no product with id p-404"
)

const (
	ExistingProductID = "p-101"
	MissingProductID  = "p-404"

	ExampleProductName  = "Pact Headset"
	ExampleProductPrice = "1499.5"
	ExampleImageURL     = "https://cdn.pact/products/headset.png"
	ExampleQRCodeURL    = "https://pay.pact/qr.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload is the product the provider seeds for StateProductExists.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":        ExistingProductID,
		"name":      ExampleProductName,
		"price":     ExampleProductPrice,
		"images":    []string{ExampleImageURL},
		"tags":      []string{"audio"},
		"qrCodeUrl": ExampleQRCodeURL,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
