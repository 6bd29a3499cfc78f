package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
)

// Handler wires the order service to HTTP.
type Handler struct {
	Svc *Service
}

// List returns the order history.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Svc.List())
}

// Get resolves a single order.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, ok := h.Svc.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, o)
}

// Routes mounts order endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.Get)
}
