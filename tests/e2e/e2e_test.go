//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - register → login → place order → stock decremented
//   - restock request → supplier confirm → stock credited, retry rejected
//   - oversized order rejected with 409 and no stock change
//   - admin forecast over the seeded catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"zodiac/internal/config"
	"zodiac/internal/infra"
	"zodiac/internal/model"
	"zodiac/internal/repository"
	"zodiac/internal/router"
	"zodiac/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func login(t *testing.T, srv *httptest.Server, kind, identifier, password string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login", jsonBody(t, map[string]string{
		"actor_kind": kind,
		"identifier": identifier,
		"password":   password,
	}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server        *httptest.Server
	adminToken    string
	supplierToken string
	productID     string
	supplierID    string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("zodiac_test"),
		tcPostgres.WithUsername("zodiac"),
		tcPostgres.WithPassword("zodiac"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                "8000",
		Env:                 "test",
		JWTSecret:           "test-secret-key",
		JWTExpirationHours:  8,
		JWTRefreshHours:     24,
		DatabaseURL:         pgURL,
		RedisURL:            rdURL,
		WorkerPoolSize:      1,
		StoreTimeoutSeconds: 5,
		ForecastProbeFactor: 1.05,
		ReportStoragePath:   t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin, one supplier, and the reference catalog
	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		require.NoError(t, err)
		return string(h)
	}
	require.NoError(t, repository.NewAdminRepository(db).Upsert(ctx, &model.AdminCredential{
		AdminID:      "admin",
		PasswordHash: hash("admin-e2e"),
	}))

	suppliers := repository.NewSupplierRepository(db)
	supplier := &model.Supplier{Name: "Acme Wholesale", PasswordHash: hash("supplier-e2e")}
	require.NoError(t, suppliers.Create(ctx, supplier))

	products := repository.NewProductRepository(db)
	seed := []struct {
		name  string
		price string
		stock int
		sales int
	}{
		{"Widget", "10.00", 100, 100},
		{"Gadget", "20.00", 50, 50},
		{"Gizmo", "15.00", 75, 75},
		{"Doohickey", "30.00", 30, 30},
	}
	var firstProductID string
	for _, s := range seed {
		p := &model.Product{
			Name:         s.name,
			SupplierID:   &supplier.ID,
			PricePerUnit: decimal.RequireFromString(s.price),
			StockCount:   s.stock,
			MinStock:     10,
			MonthlySales: s.sales,
		}
		require.NoError(t, products.Create(ctx, p))
		if firstProductID == "" {
			firstProductID = p.ID.String()
		}
	}

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, smtpCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server:        srv,
		adminToken:    login(t, srv, "admin", "admin", "admin-e2e"),
		supplierToken: login(t, srv, "supplier", "Acme Wholesale", "supplier-e2e"),
		productID:     firstProductID,
		supplierID:    supplier.ID.String(),
	}
}

func registerAndLoginCustomer(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/auth/register", jsonBody(t, map[string]string{
		"username": "e2e customer",
		"email":    email,
		"password": "customer-e2e",
	}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return login(t, env.server, "customer", email, "customer-e2e")
}

func getProduct(t *testing.T, env *testEnv, token, id string) (stock int) {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/products/"+id, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		StockCount int `json:"stock_count"`
	}
	decodeJSON(t, resp, &body)
	return body.StockCount
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CustomerOrderCycle(t *testing.T) {
	env := setupTestEnv(t)
	customerToken := registerAndLoginCustomer(t, env, "alice@e2e.test")

	before := getProduct(t, env, customerToken, env.productID)

	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{"product_id": env.productID, "units": 3}), customerToken)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Units  int    `json:"units"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, 3, order.Units)

	assert.Equal(t, before-3, getProduct(t, env, customerToken, env.productID))

	// Order history shows exactly the one order
	mineResp := do(t, env.server, "GET", "/v1/orders/mine", nil, customerToken)
	require.Equal(t, http.StatusOK, mineResp.StatusCode)
	var mine struct {
		Data  []json.RawMessage `json:"data"`
		Total int64             `json:"total"`
	}
	decodeJSON(t, mineResp, &mine)
	assert.EqualValues(t, 1, mine.Total)
}

func TestE2E_OversizedOrderRejected(t *testing.T) {
	env := setupTestEnv(t)
	customerToken := registerAndLoginCustomer(t, env, "bob@e2e.test")

	before := getProduct(t, env, customerToken, env.productID)

	resp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{"product_id": env.productID, "units": before + 1}), customerToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, before, getProduct(t, env, customerToken, env.productID))
}

func TestE2E_RestockLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	before := getProduct(t, env, env.adminToken, env.productID)

	// Admin places the restock request
	createResp := do(t, env.server, "POST", "/v1/restocks", jsonBody(t, map[string]any{
		"product_id":  env.productID,
		"supplier_id": env.supplierID,
		"units":       25,
	}), env.adminToken)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var request struct {
		ID string `json:"id"`
	}
	decodeJSON(t, createResp, &request)

	// Stock unchanged while Pending
	assert.Equal(t, before, getProduct(t, env, env.adminToken, env.productID))

	// Supplier sees it in the pending queue
	pendingResp := do(t, env.server, "GET", "/v1/restocks/pending", nil, env.supplierToken)
	require.Equal(t, http.StatusOK, pendingResp.StatusCode)
	var pending []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, pendingResp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)

	// Confirm delivery — stock credited
	confirmResp := do(t, env.server, "POST", "/v1/restocks/"+request.ID+"/confirm", nil, env.supplierToken)
	require.Equal(t, http.StatusOK, confirmResp.StatusCode)
	confirmResp.Body.Close()
	assert.Equal(t, before+25, getProduct(t, env, env.adminToken, env.productID))

	// Retried confirmation is a conflict and credits nothing
	retryResp := do(t, env.server, "POST", "/v1/restocks/"+request.ID+"/confirm", nil, env.supplierToken)
	assert.Equal(t, http.StatusConflict, retryResp.StatusCode)
	retryResp.Body.Close()
	assert.Equal(t, before+25, getProduct(t, env, env.adminToken, env.productID))
}

func TestE2E_ForecastOverSeededCatalog(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/forecast", nil, env.adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var forecast struct {
		Items []struct {
			Name    string `json:"name"`
			Trend   string `json:"trend"`
			Labeled bool   `json:"labeled"`
		} `json:"items"`
		Increasing int    `json:"increasing"`
		Decreasing int    `json:"decreasing"`
		Summary    string `json:"summary"`
	}
	decodeJSON(t, resp, &forecast)
	require.Len(t, forecast.Items, 4)
	assert.Equal(t, 4, forecast.Increasing+forecast.Decreasing)
	assert.NotEmpty(t, forecast.Summary)
	for _, item := range forecast.Items {
		assert.True(t, item.Labeled, item.Name)
	}

	// Customers may not read the forecast
	customerToken := registerAndLoginCustomer(t, env, fmt.Sprintf("carol+%d@e2e.test", 1))
	denied := do(t, env.server, "GET", "/v1/forecast", nil, customerToken)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	denied.Body.Close()
}
