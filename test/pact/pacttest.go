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
	ConsumerName = "storefront-bff"

	StateCatalogSeeded    = "product catalog seeded"
	StateActivitiesSeeded = "activity feed seeded"
	StateAccountsBaseline = "demo accounts exist"
)

const (
	ExistingProductID = "p1"
	MissingProductID  = "p999"

	DemoUsername = "demo"
	DemoPassword = "demo-pass"
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

// PactFile returns the canonical pact file path for the BFF consumer.
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

// ExampleActivityPayload provides stable test data for feed interactions.
func ExampleActivityPayload() map[string]any {
	return map[string]any{
		"id":       1,
		"title":    "City Rooftop Concert",
		"category": "music",
		"city":     "Berlin",
		"date":     "2026-08-01T18:00:00Z",
	}
}

// ExampleProductPayload provides stable test data for catalog interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":       ExistingProductID,
		"name":     "Mechanical Keyboard",
		"category": "Electronics",
		"price":    129.99,
		"stock":    25,
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
