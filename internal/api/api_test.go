package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelpos/fuelpos/internal/api"
	"github.com/fuelpos/fuelpos/internal/pos"
	"github.com/fuelpos/fuelpos/internal/store"
	"github.com/fuelpos/fuelpos/internal/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	return api.New(st, pos.New(st), 30).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// setupAdmin registers the admin account and returns a live token.
func setupAdmin(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/setup", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthIsPublic(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	// A second setup for the same email must refuse.
	rec := doJSON(t, router, http.MethodPost, "/api/auth/setup", "", map[string]string{
		"email":    "admin@example.com",
		"password": "another-secret",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "Admin@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	loginToken, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, loginToken)
	assert.NotEqual(t, token, loginToken)

	rec = doJSON(t, router, http.MethodGet, "/api/products", loginToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/logout", loginToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/products", loginToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The first session is unaffected by the second's logout.
	rec = doJSON(t, router, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRejectsWeakInput(t *testing.T) {
	router := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/setup", "", map[string]string{
		"email":    "admin@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/setup", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveAndListProducts(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/products", token, map[string]any{
		"products": []map[string]any{
			{"name": "Petrol", "pricePerUnit": 106.5, "purchasePrice": 98, "stock": 5000},
			{"name": "Engine Oil", "pricePerUnit": 450, "unit": "bottle", "purchasePrice": 380, "stock": 40},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	products := decodeBody(t, rec)["products"].([]any)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	// "Engine Oil" sorts first; category was derived from the name.
	assert.Equal(t, "Engine Oil", first["name"])
	assert.Equal(t, "Oil", first["category"])
	second := products[1].(map[string]any)
	assert.Equal(t, "Petrol", second["name"])
	assert.Equal(t, "Fuel", second["category"])
	assert.Equal(t, "L", second["unit"])

	rec = doJSON(t, router, http.MethodPut, "/api/products", token, map[string]any{
		"products": []map[string]any{{"stock": 10}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerEndpoints(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/customers", token, map[string]string{
		"name":       "Asha",
		"cardNumber": "12345678",
		"mobile":     "9876543210",
		"barcode":    "CUST-001",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	customer := decodeBody(t, rec)["customer"].(map[string]any)
	assert.Equal(t, "Asha", customer["name"])
	assert.Equal(t, float64(0), customer["points"])

	// Duplicate card and duplicate barcode both refuse.
	rec = doJSON(t, router, http.MethodPost, "/api/customers", token, map[string]string{
		"name":       "Imposter",
		"cardNumber": "12345678",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/customers", token, map[string]string{
		"name":       "Imposter",
		"cardNumber": "87654321",
		"barcode":    "CUST-001",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/customers?cardNumber=12345678", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/customers?barcode=CUST-001", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/customers?cardNumber=99999999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/customers/12345678", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/customers/12345678", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/customers/12345678", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordSaleEndpoint(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/products", token, map[string]any{
		"products": []map[string]any{{"name": "Petrol", "pricePerUnit": 100, "purchasePrice": 50, "stock": 100}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/customers", token, map[string]string{
		"name":       "Asha",
		"cardNumber": "12345678",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", token, map[string]any{
		"product":            "Petrol",
		"units":              10,
		"amount":             1000,
		"customerCardNumber": "12345678",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decodeBody(t, rec)
	sale := payload["sale"].(map[string]any)
	// Default rates: 10 x 1 + floor(1000 / 10) = 110.
	assert.Equal(t, float64(110), sale["pointsEarned"])
	assert.Equal(t, float64(500), sale["profit"])
	assert.Equal(t, "Asha", sale["customer"])
	product := payload["product"].(map[string]any)
	assert.Equal(t, float64(90), product["stock"])

	rec = doJSON(t, router, http.MethodPost, "/api/sales", token, map[string]any{
		"product": "Petrol",
		"units":   500,
		"amount":  50000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", token, map[string]any{
		"product": "Petrol",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedeemPointsEndpoint(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/redeemables", token, map[string]any{
		"redeemables": []map[string]any{{"name": "Mug", "pointsRequired": 20, "stock": 5}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPut, "/api/products", token, map[string]any{
		"products": []map[string]any{{"name": "Petrol", "purchasePrice": 50, "stock": 100}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/customers", token, map[string]string{
		"name":       "Asha",
		"cardNumber": "12345678",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Earn 50 points: 40 units at the default petrol rate plus floor(100/10).
	rec = doJSON(t, router, http.MethodPost, "/api/sales", token, map[string]any{
		"product":            "Petrol",
		"units":              40,
		"amount":             100,
		"customerCardNumber": "12345678",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/redemptions", token, map[string]any{
		"customerCardNumber": "12345678",
		"items":              []map[string]any{{"product": "Mug", "quantity": 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decodeBody(t, rec)
	customer := payload["customer"].(map[string]any)
	assert.Equal(t, float64(10), customer["points"])
	products := payload["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, float64(3), products[0].(map[string]any)["stock"])

	rec = doJSON(t, router, http.MethodPost, "/api/redemptions", token, map[string]any{
		"customerCardNumber": "12345678",
		"items":              []map[string]any{{"product": "Mug", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "insufficient points")

	rec = doJSON(t, router, http.MethodPost, "/api/redemptions", token, map[string]any{
		"customerCardNumber": "12345678",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPointsSettingsEndpoint(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPut, "/api/settings/points", token, map[string]any{
		"petrol": 2, "diesel": 1.5, "oil": 3,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value for amount", decodeBody(t, rec)["error"])

	rec = doJSON(t, router, http.MethodPut, "/api/settings/points", token, map[string]any{
		"petrol": 2, "diesel": 1.5, "oil": 3, "amount": 20,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bootstrap", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeBody(t, rec)["settings"].(map[string]any)
	assert.Equal(t, float64(2), settings["petrol"])
	assert.Equal(t, float64(20), settings["amount"])
}

func TestNotificationEndpoints(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/notifications", token, map[string]string{
		"title":   "Diwali offer",
		"message": "Double points all week",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	notification := decodeBody(t, rec)["notification"].(map[string]any)
	id := notification["id"].(float64)

	rec = doJSON(t, router, http.MethodPost, "/api/notifications", token, map[string]string{
		"title": "No message",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["notifications"], 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/notifications/"+strconv.Itoa(int(id)), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["notifications"])
}

func TestBootstrapShape(t *testing.T) {
	router := newRouter(t)
	token := setupAdmin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/bootstrap", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	for _, key := range []string{"products", "customers", "redeemables", "settings", "sales", "notifications"} {
		assert.Contains(t, payload, key)
	}
}
