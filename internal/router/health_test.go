package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartcart/internal/auth"
	"smartcart/internal/plan"
	"smartcart/internal/pricing"
	"smartcart/internal/route"
	"smartcart/internal/store"
	"smartcart/internal/travel"
	"smartcart/internal/trip"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	prices := pricing.NewService(pricing.NewInMemoryRepository(), pricing.DefaultReference(), nil)
	searcher := plan.NewSearcher(plan.NewEvaluator(route.NewHaversineRouter(), travel.DefaultRates(), nil), 2, nil)
	trips := trip.NewService(trip.NewInMemoryRepository(), store.NewStaticLocator(nil), prices, searcher, nil)

	return NewRouter(Handlers{
		Auth:    auth.NewHandler(auth.NewService(auth.NewInMemoryUserRepository())),
		Trips:   trip.NewHandler(trips),
		Pricing: pricing.NewHandler(prices),
	}, []string{"http://localhost:3000"}, nil)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestTripsRequireAuth(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAdminPricesRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter()

	token, err := auth.GenerateToken("shopper-1", "s@example.com", auth.RoleShopper)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/admin/prices", bytes.NewBufferString(`{"item":"milk","chain":"Walmart","price":2.5}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}

	adminToken, _ := auth.GenerateToken("admin-1", "a@example.com", auth.RoleAdmin)
	req = httptest.NewRequest(http.MethodPut, "/admin/prices", bytes.NewBufferString(`{"item":"milk","chain":"Walmart","price":2.5}`))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/prices", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"price":2.5`)) {
		t.Fatalf("expected overridden price in listing, got %d: %s", w.Code, w.Body.String())
	}
}
