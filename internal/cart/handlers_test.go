package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vellum-supply/storefront/internal/pricing"
)

func newTestRouter() (*chi.Mux, *Service) {
	svc := NewService(NewStore(time.Hour), testFinder(), pricing.DefaultRates(), nil)
	h := &Handler{Svc: svc}
	r := chi.NewRouter()
	h.Routes(r)
	return r, svc
}

func TestCreateCartEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(`{"sessionId":"session-1"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var body struct {
		Data struct {
			CartID string `json:"cartId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "session-1", body.Data.CartID)
}

func TestAddItemEndpointReturnsPricing(t *testing.T) {
	r, svc := newTestRouter()
	c := svc.Ensure("session-1")

	req := httptest.NewRequest(http.MethodPost, "/carts/"+c.ID+"/items", strings.NewReader(`{"productId":"sp-1001","qty":3}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data struct {
			Items   []LineItem        `json:"items"`
			Pricing pricing.Breakdown `json:"pricing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	require.InDelta(t, 357.225, body.Data.Pricing.Total, 1e-9)
}

func TestAddItemEndpointRequiresProductID(t *testing.T) {
	r, svc := newTestRouter()
	c := svc.Ensure("session-1")

	req := httptest.NewRequest(http.MethodPost, "/carts/"+c.ID+"/items", strings.NewReader(`{"qty":1}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddItemEndpointUnknownProduct(t *testing.T) {
	r, svc := newTestRouter()
	c := svc.Ensure("session-1")

	req := httptest.NewRequest(http.MethodPost, "/carts/"+c.ID+"/items", strings.NewReader(`{"productId":"nope"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateItemEndpointZeroQtyRemoves(t *testing.T) {
	r, svc := newTestRouter()
	c := svc.Ensure("session-1")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/carts/"+c.ID+"/items/sp-1001", strings.NewReader(`{"qty":0}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	got, ok := svc.Get(c.ID)
	require.True(t, ok)
	require.Empty(t, got.Items)
}

func TestGetCartEndpointNotFound(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/carts/missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
