package quote

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
)

// Handler wires the quote service to HTTP.
type Handler struct {
	Svc *Service
}

// Submit turns the session's cart into a quote request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CartID  string  `json:"cartId"`
		Contact Contact `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(payload.CartID) == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cartId is required", nil)
		return
	}
	q, err := h.Svc.Submit(r.Context(), payload.CartID, payload.Contact)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, q)
}

// List returns the quote history visible to a session.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
	common.JSONData(w, http.StatusOK, h.Svc.List(sessionID))
}

// Get resolves a single quote.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, ok := h.Svc.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "quote not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, q)
}

// Routes mounts quote endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/quotes", h.Submit)
	r.Get("/quotes", h.List)
	r.Get("/quotes/{id}", h.Get)
}
