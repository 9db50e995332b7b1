//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"eskimo/internal/config"
	"eskimo/internal/infra"
	"eskimo/internal/model"
	"eskimo/internal/repository"
	"eskimo/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const e2eBillingSecret = "e2e-billing-secret"

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

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		require.Equalf(t, status, resp.StatusCode, "body: %v", body)
	}
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	db     *gorm.DB
	rdb    *redis.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("eskimo_test"),
		tcPostgres.WithUsername("eskimo"),
		tcPostgres.WithPassword("eskimo"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		SessionCookieName:  "session",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		BillingSecret:      e2eBillingSecret,
		BusinessName:       "Eskimo E2E",
		ReportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, repository.NewSuscripcionRepository(db).EnsureTrial(ctx, 30, time.Now()))

	hash, err := bcrypt.GenerateFromPassword([]byte("eskimo2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (nombre, email, password_hash, rol)
		VALUES ('Admin E2E', 'admin@e2e.test', ?, 'admin')`, string(hash)).Error)

	r := New(cfg, db, rdb, infra.NewCircuitBreaker(infra.SMTPBreakerConfig()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, http.MethodPost, "/api/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "eskimo2026"}), "")
	expectStatus(t, loginResp, http.StatusOK)
	require.NotEmpty(t, loginResp.Cookies(), "session cookie")
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token, db: db, rdb: rdb}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Warehouse → employee → cart → sale, then the report numbers.
func TestE2E_SaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, http.MethodPost, "/api/products",
		jsonBody(t, map[string]any{"producto": "Paleta Fresa", "precio": 100, "precioVenta": 150, "cantidad": 20}),
		env.token)
	expectStatus(t, prodResp, http.StatusCreated)
	var prod struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	empResp := do(t, env.server, http.MethodPost, "/api/empleados",
		jsonBody(t, map[string]any{"nombre": "Rosa", "telefono": "555-0101"}), env.token)
	expectStatus(t, empResp, http.StatusCreated)
	var emp struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, empResp, &emp)

	asigResp := do(t, env.server, http.MethodPost, "/api/inventarioempleado",
		jsonBody(t, map[string]any{"empleadoId": emp.ID, "productoId": prod.ID, "cantidad": 5}), env.token)
	expectStatus(t, asigResp, http.StatusCreated)
	asigResp.Body.Close()

	// Warehouse stock went down by the assignment.
	listResp := do(t, env.server, http.MethodGet, "/api/products?search=paleta", nil, env.token)
	expectStatus(t, listResp, http.StatusOK)
	var productos []struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, listResp, &productos)
	require.Len(t, productos, 1)
	assert.Equal(t, 15, productos[0].Cantidad)

	// Cart
	cartResp := do(t, env.server, http.MethodPost, "/api/carrito",
		jsonBody(t, map[string]any{"empleadoId": emp.ID}), env.token)
	expectStatus(t, cartResp, http.StatusCreated)
	var cart struct {
		ID string `json:"id"`
	}
	decodeJSON(t, cartResp, &cart)

	itemResp := do(t, env.server, http.MethodPost, "/api/carrito/"+cart.ID+"/items",
		jsonBody(t, map[string]any{"productoId": prod.ID, "cantidad": 3}), env.token)
	expectStatus(t, itemResp, http.StatusOK)
	itemResp.Body.Close()

	overResp := do(t, env.server, http.MethodPost, "/api/carrito/"+cart.ID+"/items",
		jsonBody(t, map[string]any{"productoId": prod.ID, "cantidad": 3}), env.token)
	expectStatus(t, overResp, http.StatusConflict)
	overResp.Body.Close()

	checkoutResp := do(t, env.server, http.MethodPost, "/api/carrito/"+cart.ID+"/checkout", nil, env.token)
	expectStatus(t, checkoutResp, http.StatusCreated)
	var ventas []map[string]any
	decodeJSON(t, checkoutResp, &ventas)
	assert.Len(t, ventas, 1)

	goneResp := do(t, env.server, http.MethodGet, "/api/carrito/"+cart.ID, nil, env.token)
	expectStatus(t, goneResp, http.StatusNotFound)
	goneResp.Body.Close()

	// Employee inventory shows what is left.
	invResp := do(t, env.server, http.MethodGet, "/api/products/"+strconv.FormatUint(uint64(emp.ID), 10), nil, env.token)
	expectStatus(t, invResp, http.StatusOK)
	var inv []struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, invResp, &inv)
	require.Len(t, inv, 1)
	assert.Equal(t, 2, inv[0].Cantidad)

	resumenResp := do(t, env.server, http.MethodGet, "/api/ventas/resumen", nil, env.token)
	expectStatus(t, resumenResp, http.StatusOK)
	var resumen struct {
		Total    decimal.Decimal `json:"total"`
		Ganancia decimal.Decimal `json:"ganancia"`
		Cantidad int             `json:"cantidad"`
	}
	decodeJSON(t, resumenResp, &resumen)
	assert.True(t, resumen.Total.Equal(decimal.NewFromInt(450)), resumen.Total.String())
	assert.True(t, resumen.Ganancia.Equal(decimal.NewFromInt(150)), resumen.Ganancia.String())
	assert.Equal(t, 3, resumen.Cantidad)

	exportResp := do(t, env.server, http.MethodGet, "/api/ventas/reporte/export?format=xlsx", nil, env.token)
	expectStatus(t, exportResp, http.StatusOK)
	assert.Contains(t, exportResp.Header.Get("Content-Disposition"), ".xlsx")
	exportResp.Body.Close()
}

// An expired subscription blocks business routes until a code is redeemed,
// and a code can be redeemed only once.
func TestE2E_SubscriptionGate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.db.Exec(`UPDATE suscripcion SET expira_en = ?`, time.Now().Add(-time.Hour)).Error)
	require.NoError(t, env.rdb.FlushDB(ctx).Err())

	blocked := do(t, env.server, http.MethodGet, "/api/products", nil, env.token)
	expectStatus(t, blocked, http.StatusPaymentRequired)
	var gate struct {
		Msg string `json:"msg"`
	}
	decodeJSON(t, blocked, &gate)
	assert.Equal(t, "expired", gate.Msg)

	code, err := service.GenerarCodigoActivacion(e2eBillingSecret, 30, time.Now())
	require.NoError(t, err)

	actResp := do(t, env.server, http.MethodPost, "/api/billings", jsonBody(t, map[string]string{"token": code}), "")
	expectStatus(t, actResp, http.StatusOK)
	actResp.Body.Close()

	again := do(t, env.server, http.MethodPost, "/api/billings", jsonBody(t, map[string]string{"token": code}), "")
	expectStatus(t, again, http.StatusConflict)
	again.Body.Close()

	ok := do(t, env.server, http.MethodGet, "/api/products", nil, env.token)
	expectStatus(t, ok, http.StatusOK)
	ok.Body.Close()
}

// ── Stock consistency ────────────────────────────────────────────────────────

func (env *testEnv) crearID(t *testing.T, path string, body any) uint {
	t.Helper()
	resp := do(t, env.server, http.MethodPost, path, jsonBody(t, body), env.token)
	expectStatus(t, resp, http.StatusCreated)
	var out struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &out)
	require.NotZero(t, out.ID)
	return out.ID
}

func (env *testEnv) stock(t *testing.T, productoID uint) int {
	t.Helper()
	var cantidad int
	require.NoError(t, env.db.Raw(`SELECT cantidad FROM productos WHERE id = ?`, productoID).Scan(&cantidad).Error)
	return cantidad
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

// Editing catalog fields while assignments move the stock must not write a
// stale quantity back.
func TestE2E_ProductEditKeepsStock(t *testing.T) {
	env := setupTestEnv(t)
	prod := env.crearID(t, "/api/products", map[string]any{"producto": "Paleta Mango", "precio": 100, "precioVenta": 150, "cantidad": 20})
	emp := env.crearID(t, "/api/empleados", map[string]any{"nombre": "Rosa", "telefono": "555-0101"})

	env.crearID(t, "/api/inventarioempleado", map[string]any{"empleadoId": emp, "productoId": prod, "cantidad": 5})
	put := do(t, env.server, http.MethodPut, idPath("/api/products", prod), jsonBody(t, map[string]any{"precioVenta": 160}), env.token)
	expectStatus(t, put, http.StatusOK)
	put.Body.Close()
	assert.Equal(t, 15, env.stock(t, prod))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, http.MethodPost, "/api/inventarioempleado",
				jsonBody(t, map[string]any{"empleadoId": emp, "productoId": prod, "cantidad": 1}), env.token)
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			resp.Body.Close()
		}()
		go func(i int) {
			defer wg.Done()
			resp := do(t, env.server, http.MethodPut, idPath("/api/products", prod),
				jsonBody(t, map[string]any{"precioVenta": 160 + i}), env.token)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, env.stock(t, prod))
}

// A purchase deleted twice, even concurrently, reverts its stock once.
func TestE2E_PurchaseDeleteIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	prod := env.crearID(t, "/api/products", map[string]any{"producto": "Cono Vainilla", "precio": 50, "precioVenta": 90, "cantidad": 10})
	compra := env.crearID(t, "/api/compras/create", map[string]any{"productoId": prod, "cantidad": 4, "precio": 50, "precioVenta": 90})
	require.Equal(t, 14, env.stock(t, prod))

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, http.MethodDelete, idPath("/api/compras", compra), nil, env.token)
			codes <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(codes)

	var got []int
	for c := range codes {
		got = append(got, c)
	}
	assert.ElementsMatch(t, []int{http.StatusNoContent, http.StatusNotFound}, got)
	assert.Equal(t, 10, env.stock(t, prod))

	again := do(t, env.server, http.MethodDelete, idPath("/api/compras", compra), nil, env.token)
	expectStatus(t, again, http.StatusNotFound)
	again.Body.Close()
	assert.Equal(t, 10, env.stock(t, prod))

	var anulaciones int64
	require.NoError(t, env.db.Raw(`SELECT COUNT(*) FROM movimientos_stock WHERE producto_id = ? AND tipo = ?`,
		prod, model.MovAnulacion).Scan(&anulaciones).Error)
	assert.Equal(t, int64(1), anulaciones)
}

// Deleting an assignment while a sale of the same product is in flight never
// leaves an employee with more units sold than assigned.
func TestE2E_AssignmentDeleteVersusSale(t *testing.T) {
	env := setupTestEnv(t)
	prod := env.crearID(t, "/api/products", map[string]any{"producto": "Paleta Limon", "precio": 100, "precioVenta": 150, "cantidad": 100})

	for ronda := 0; ronda < 5; ronda++ {
		emp := env.crearID(t, "/api/empleados", map[string]any{"nombre": "Vendedor " + strconv.Itoa(ronda), "telefono": "555-0100"})
		asig := env.crearID(t, "/api/inventarioempleado", map[string]any{"empleadoId": emp, "productoId": prod, "cantidad": 5})
		env.crearID(t, "/api/inventarioempleado", map[string]any{"empleadoId": emp, "productoId": prod, "cantidad": 2})

		// 7 assigned: selling 3 and removing the 5-unit assignment cannot both succeed.
		var borrado, venta int
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, http.MethodDelete, idPath("/api/inventarioempleado", asig), nil, env.token)
			borrado = resp.StatusCode
			resp.Body.Close()
		}()
		go func() {
			defer wg.Done()
			resp := do(t, env.server, http.MethodPost, "/api/ventas",
				jsonBody(t, []map[string]any{{"empleadoId": emp, "productoId": prod, "cantidad": 3}}), env.token)
			venta = resp.StatusCode
			resp.Body.Close()
		}()
		wg.Wait()

		exitos := 0
		if borrado == http.StatusNoContent {
			exitos++
		} else {
			assert.Equal(t, http.StatusConflict, borrado)
		}
		if venta == http.StatusCreated {
			exitos++
		} else {
			assert.Equal(t, http.StatusConflict, venta)
		}
		assert.Equal(t, 1, exitos, "ronda %d: delete=%d sale=%d", ronda, borrado, venta)

		var asignado, vendido int
		require.NoError(t, env.db.Raw(`SELECT COALESCE(SUM(cantidad), 0) FROM inventario_empleado WHERE empleado_id = ?`, emp).Scan(&asignado).Error)
		require.NoError(t, env.db.Raw(`SELECT COALESCE(SUM(cantidad), 0) FROM ventas WHERE empleado_id = ?`, emp).Scan(&vendido).Error)
		assert.LessOrEqual(t, vendido, asignado, "ronda %d", ronda)
	}
}

// Rankings over a range without sales are empty JSON arrays.
func TestE2E_EmptyRankingsAreArrays(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/api/ventas/reporte", "/api/products/reporte"} {
		resp := do(t, env.server, http.MethodGet, path+"?startDate=2001-01-01&endDate=2001-01-31", nil, env.token)
		expectStatus(t, resp, http.StatusOK)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body), path)
	}
}
