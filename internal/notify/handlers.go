package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
)

// Handler exposes the session notification over HTTP.
type Handler struct {
	Center *Center
}

// Current returns the visible notification, or a null payload once it has
// been dismissed or has expired.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	n, ok := h.Center.Current(sessionID)
	if !ok {
		common.JSONData(w, http.StatusOK, nil)
		return
	}
	common.JSONData(w, http.StatusOK, n)
}

// Dismiss clears the notification ahead of its auto-dismiss deadline.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	h.Center.Dismiss(sessionID)
	common.JSONData(w, http.StatusOK, nil)
}

// Routes mounts notification endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/sessions/{sessionId}/notification", h.Current)
	r.Delete("/sessions/{sessionId}/notification", h.Dismiss)
}
