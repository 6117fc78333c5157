package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogerio-castellano/product-console/internal/client/clienttest"
	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func runCLI(t *testing.T, srv *clienttest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"productctl", "--api-url", srv.URL, "--log-level", "error"}, args...)
	err := newApp(&out).Run(argv)
	return out.String(), err
}

func newServer(t *testing.T) *clienttest.Server {
	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

func TestQueryPrintsBuiltQuery(t *testing.T) {
	srv := newServer(t)
	out, err := runCLI(t, srv, "query", "--price", "10", "--owner", "alice")
	require.NoError(t, err)
	assert.Equal(t, "low=10&high=10&owner=alice\n", out)
	assert.Empty(t, srv.Queries())
}

func TestSearch(t *testing.T) {
	srv := newServer(t)
	srv.Seed(
		models.Product{Name: "Hat", Price: ptr(10.0), Owner: "alice", Category: "A"},
		models.Product{Name: "Coat", Price: ptr(80.0), Owner: "bob", Category: "C"},
	)

	out, err := runCLI(t, srv, "search", "--owner", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Hat")
	assert.NotContains(t, out, "Coat")
	assert.Equal(t, []string{"owner=alice"}, srv.Queries())
}

func TestGetMissingFails(t *testing.T) {
	srv := newServer(t)
	out, err := runCLI(t, srv, "get", "42")
	assert.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, out, "Product with id '42' was not found.")
}

func TestGetNeedsID(t *testing.T) {
	srv := newServer(t)
	_, err := runCLI(t, srv, "get")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errActionFailed)
}

func TestCreateUpdateDelete(t *testing.T) {
	srv := newServer(t)

	out, err := runCLI(t, srv, "create", "--name", "Desk", "--price", "99.5", "--inventory", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Success")
	require.Len(t, srv.Products(), 1)

	_, err = runCLI(t, srv, "update", "1", "--price", "120")
	require.NoError(t, err)
	p := srv.Products()[0]
	assert.Equal(t, "Desk", p.Name)
	if assert.NotNil(t, p.Price) {
		assert.Equal(t, 120.0, *p.Price)
	}
	if assert.NotNil(t, p.Inventory) {
		assert.Equal(t, 3, *p.Inventory)
	}

	out, err = runCLI(t, srv, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Product has been Deleted!")
	assert.Empty(t, srv.Products())
}

func TestCreateRejectsBadPrice(t *testing.T) {
	srv := newServer(t)
	out, err := runCLI(t, srv, "create", "--name", "Desk", "--price", "cheap")
	assert.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, out, "price must be a number")
	assert.Empty(t, srv.Products())
}

func TestPurchase(t *testing.T) {
	srv := newServer(t)
	srv.Seed(models.Product{Name: "Hat", Price: ptr(10.0), Inventory: ptr(5)})

	out, err := runCLI(t, srv, "purchase", "1", "--amount", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Success")

	var inventoryLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "inventory") {
			inventoryLine = line
		}
	}
	assert.True(t, strings.HasSuffix(strings.TrimSpace(inventoryLine), "3"), "got %q", inventoryLine)
}

func TestConfigFileSuppliesAPIURL(t *testing.T) {
	srv := newServer(t)
	srv.Seed(models.Product{Name: "Hat", Owner: "alice"})

	path := filepath.Join(t.TempDir(), "console.yaml")
	yaml := "api:\n  base_url: " + srv.URL + "\n  timeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"productctl", "--config", path, "--log-level", "error", "get", "1"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Hat")
}

func TestAPIURLFlagOverridesConfigFile(t *testing.T) {
	srv := newServer(t)
	srv.Seed(models.Product{Name: "Hat"})

	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://127.0.0.1:1\n"), 0o600))

	out, err := runCLI(t, srv, "--config", path, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Hat")
}

func TestMissingConfigFileFails(t *testing.T) {
	srv := newServer(t)
	_, err := runCLI(t, srv, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "get", "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errActionFailed)
}
