package cart

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
)

// Handler wires the cart service to HTTP.
type Handler struct {
	Svc *Service
}

// Create creates or returns a cart for the caller's session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	cart := h.Svc.Ensure(strings.TrimSpace(payload.SessionID))
	common.JSONData(w, http.StatusCreated, map[string]any{
		"cartId": cart.ID,
	})
}

// Get returns cart contents and the derived pricing breakdown.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	cart, ok := h.Svc.Get(cartID)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart not found", nil)
		return
	}
	h.writeCart(w, cart)
}

// AddItem adds or increments a cart line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	var payload struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}
	cart, err := h.Svc.AddItem(r.Context(), cartID, payload.ProductID, payload.Qty)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	h.writeCart(w, cart)
}

// UpdateItem sets the absolute quantity for a line item; zero removes it.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productId")
	var payload struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	cart, err := h.Svc.UpdateQty(r.Context(), cartID, productID, payload.Qty)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	h.writeCart(w, cart)
}

// RemoveItem deletes a cart line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productId")
	cart, err := h.Svc.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	h.writeCart(w, cart)
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	if err := h.Svc.Clear(r.Context(), cartID); err != nil {
		common.WriteAppError(w, err)
		return
	}
	cart, _ := h.Svc.Get(cartID)
	h.writeCart(w, cart)
}

func (h *Handler) writeCart(w http.ResponseWriter, cart Cart) {
	breakdown := h.Svc.Breakdown(cart)
	common.JSONData(w, http.StatusOK, map[string]any{
		"id":      cart.ID,
		"items":   cart.Items,
		"pricing": breakdown,
	})
}

// Routes mounts cart endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/carts", h.Create)
	r.Get("/carts/{id}", h.Get)
	r.Delete("/carts/{id}", h.Clear)
	r.Post("/carts/{id}/items", h.AddItem)
	r.Patch("/carts/{id}/items/{productId}", h.UpdateItem)
	r.Delete("/carts/{id}/items/{productId}", h.RemoveItem)
}
