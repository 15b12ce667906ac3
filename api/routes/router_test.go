package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Hasan-Creations/MobiSwap/api/middleware"
	"github.com/Hasan-Creations/MobiSwap/internal/advisory"
	"github.com/Hasan-Creations/MobiSwap/internal/cart"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/internal/checkout"
	"github.com/Hasan-Creations/MobiSwap/internal/exchange"
	"github.com/Hasan-Creations/MobiSwap/internal/orders"
	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/db"
	"github.com/Hasan-Creations/MobiSwap/pkg/events"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
	"github.com/Hasan-Creations/MobiSwap/pkg/migrate"
)

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", goredis.Nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key], _ = value.(string)
	return true, nil
}

func (m *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return scope + ":" + id
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, "../../pkg/migrate/migrations", "up"))

	logg := logger.Nop()
	reg := prometheus.NewRegistry()
	products := catalog.Default()

	registry := cart.NewRegistry(cart.NewMemorySlots(), logg,
		cart.WithRegistryMetrics(metrics.NewCartMetrics(reg), nil))

	gen := llm.GeneratorFunc(func(_ context.Context, prompt llm.Prompt) (json.RawMessage, error) {
		if prompt.Name == "recommendPhonePrompt" {
			return json.RawMessage(`{"recommendations":["6","1"]}`), nil
		}
		return json.RawMessage(`{"estimatedValueLow":30000,"estimatedValueHigh":42000,"explanation":"Fair wear."}`), nil
	})
	gateway := advisory.NewGateway(gen, products, logg, metrics.NewAdvisoryMetrics(reg))

	emitter := events.NewEmitter(events.Noop{}, nil, time.Second, logg)
	orderSvc, err := orders.NewService(orders.NewRepository(conn))
	require.NoError(t, err)
	checkoutSvc, err := checkout.NewService(registry, orderSvc, emitter, logg)
	require.NoError(t, err)
	exchangeSvc, err := exchange.NewService(exchange.NewRepository(conn), emitter, logg)
	require.NoError(t, err)

	cfg := &config.Config{
		App:               config.AppConfig{Env: "dev"},
		AdvisoryRateLimit: config.AdvisoryRateLimitConfig{Window: time.Minute, IPLimit: 10},
	}

	return NewRouter(cfg, logg, Dependencies{
		DB:          db.NewFromConn(conn, config.DBDriverSQLite),
		Catalog:     products,
		Carts:       registry,
		Advisory:    gateway,
		Checkout:    checkoutSvc,
		Orders:      orderSvc,
		Exchange:    exchangeSvc,
		Gatherer:    reg,
		Idempotency: &memoryIdempotencyStore{data: map[string]string{}},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	h := setupRouter(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestShoppingFlow(t *testing.T) {
	h := setupRouter(t)
	session := map[string]string{middleware.CartSessionHeader: "flow-session"}

	rec := do(t, h, http.MethodGet, "/api/v1/products?featured=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.CartSessionHeader))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":"1"}`, session).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":"2"}`, session).Code)
	rec = do(t, h, http.MethodPatch, "/api/v1/cart/items/2", `{"quantity":2}`, session)
	require.Equal(t, http.StatusOK, rec.Code)

	var cartBody struct {
		Data cart.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartBody))
	assert.Equal(t, int64(3097), cartBody.Data.TotalPrice)
	assert.Equal(t, 3, cartBody.Data.ItemCount)

	checkoutBody := `{"name":"Ayesha Khan","email":"ayesha@example.com","address":"House 12, Street 4, F-7/2","city":"Islamabad","cardNumber":"4242 4242 4242 1234","expiryDate":"09/29","cvc":"123"}`

	rec = do(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, session)
	require.Equal(t, http.StatusBadRequest, rec.Code, "checkout needs an idempotency key")

	withKey := map[string]string{middleware.CartSessionHeader: "flow-session", "Idempotency-Key": "order-1"}
	rec = do(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, withKey)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var orderBody struct {
		Data orders.OrderDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orderBody))
	assert.Equal(t, "1234", orderBody.Data.CardLast4)
	assert.Equal(t, int64(3097), orderBody.Data.TotalPrice)

	replay := do(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, withKey)
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.JSONEq(t, rec.Body.String(), replay.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/cart", "", session)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartBody))
	assert.Empty(t, cartBody.Data.Items)

	rec = do(t, h, http.MethodGet, "/api/v1/orders/"+orderBody.Data.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody,
		map[string]string{middleware.CartSessionHeader: "flow-session", "Idempotency-Key": "order-2"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdvisoryRoutes(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/advisory/valuation", `{"model":"iPhone 12","condition":"Fair"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"explanation":"Fair wear."`)

	rec = do(t, h, http.MethodPost, "/api/v1/advisory/recommendations", `{"query":"budget phone"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			Recommendations []string          `json:"recommendations"`
			Products        []catalog.Product `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"6", "1"}, body.Data.Recommendations)
	require.Len(t, body.Data.Products, 2)
	assert.Equal(t, "6", body.Data.Products[0].ID)
}

func TestExchangeRoute(t *testing.T) {
	h := setupRouter(t)
	body := `{"currentModel":"Galaxy S21","condition":"Needs Repair","issues":"Cracked back glass","name":"Bilal","phone":"03001234567","email":"bilal@example.com"}`

	rec := do(t, h, http.MethodPost, "/api/v1/exchange-requests", body, map[string]string{"Idempotency-Key": "ex-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"received"`)

	rec = do(t, h, http.MethodPost, "/api/v1/exchange-requests", strings.Replace(body, "03001234567", "123", 1),
		map[string]string{"Idempotency-Key": "ex-2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	h := setupRouter(t)
	do(t, h, http.MethodPost, "/api/v1/advisory/valuation", `{"model":"Pixel 6","condition":"Good"}`, nil)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mobiswap_advisory_calls_total")
}
