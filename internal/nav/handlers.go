package nav

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vellum-supply/storefront/internal/catalog"
	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/obs"
)

// Handler wires the navigation controller to HTTP.
type Handler struct {
	Controller *Controller
	Catalog    *catalog.Service
	NewID      func() string
}

// NewHandler constructs a Handler.
func NewHandler(controller *Controller, cat *catalog.Service) *Handler {
	return &Handler{Controller: controller, Catalog: cat, NewID: uuid.NewString}
}

// CreateSession starts a browsing session on the home screen.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.NewID()
	state := h.Controller.Ensure(id)
	common.JSONData(w, http.StatusCreated, map[string]any{
		"sessionId": id,
		"nav":       state,
	})
}

// GetState returns the session's navigation state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	state, ok := h.Controller.Current(sessionID)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
		return
	}
	common.JSONData(w, http.StatusOK, state)
}

// Navigate performs a screen transition.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	var payload struct {
		Screen     string `json:"screen"`
		CategoryID string `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	state := h.Controller.Navigate(sessionID, Screen(payload.Screen), Options{CategoryID: payload.CategoryID})
	obs.ObserveScreenView(string(state.Current))
	common.JSONData(w, http.StatusOK, state)
}

// SelectProduct records a product selection and moves to the detail screen.
func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	var payload struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	state := h.Controller.SelectProduct(sessionID, strings.TrimSpace(payload.ProductID))
	obs.ObserveScreenView(string(state.Current))
	common.JSONData(w, http.StatusOK, state)
}

// SetPersona switches or toggles the persona flag. An empty value toggles.
func (h *Handler) SetPersona(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	var payload struct {
		Persona string `json:"persona"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	var state State
	if strings.TrimSpace(payload.Persona) == "" {
		state = h.Controller.TogglePersona(sessionID)
	} else {
		state = h.Controller.SetPersona(sessionID, Persona(payload.Persona))
	}
	common.JSONData(w, http.StatusOK, state)
}

// View resolves what the current screen renders: the category's products on
// category-products, the selected product (or a not-found state) on
// product-detail, and the bare state elsewhere.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	state, ok := h.Controller.Current(sessionID)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
		return
	}
	view := map[string]any{"nav": state}
	switch state.Current {
	case ScreenCategoryProducts:
		if category, err := h.Catalog.CategoryByID(state.SelectedCategoryID); err == nil {
			view["category"] = category
			view["products"] = h.Catalog.ProductsForCategory(state.SelectedCategoryID)
		} else {
			view["notFound"] = true
		}
	case ScreenProductDetail:
		if product, err := h.Catalog.FindProduct(state.SelectedProductID); err == nil {
			view["product"] = product
		} else {
			view["notFound"] = true
		}
	}
	common.JSONData(w, http.StatusOK, view)
}

// Routes mounts navigation endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{sessionId}/nav", h.GetState)
	r.Post("/sessions/{sessionId}/nav", h.Navigate)
	r.Post("/sessions/{sessionId}/nav/select-product", h.SelectProduct)
	r.Post("/sessions/{sessionId}/persona", h.SetPersona)
	r.Get("/sessions/{sessionId}/view", h.View)
}
