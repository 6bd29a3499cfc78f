package account

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
)

// Handler wires the account service to HTTP.
type Handler struct {
	Svc *Service
}

// Submit accepts a business-account application.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID   string      `json:"sessionId"`
		Application Application `json:"application"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	receipt, err := h.Svc.Submit(r.Context(), strings.TrimSpace(payload.SessionID), payload.Application)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, receipt)
}

// Routes mounts account endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/business-applications", h.Submit)
}
