package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/obs"
)

// Handler wires the catalog service to HTTP.
type Handler struct {
	Service      *Service
	DefaultLimit int
	MaxLimit     int
}

// NewHandler constructs a Handler with sane listing defaults.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc, DefaultLimit: 20, MaxLimit: 100}
}

// Products lists products across all collections.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	page, limit := common.ParsePagination(r, h.DefaultLimit)
	if h.MaxLimit > 0 && limit > h.MaxLimit {
		limit = h.MaxLimit
	}
	params := ListParams{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:  strings.TrimSpace(r.URL.Query().Get("sort")),
		Page:  page,
		Limit: limit,
	}
	result := h.Service.List(params)
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": result.Items,
		"pagination": common.Pagination{
			Page:       result.Page,
			PerPage:    result.Limit,
			TotalItems: result.Total,
		},
	})
}

// ProductDetail resolves a single product across all fixture collections.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.Service.FindProduct(id)
	if err != nil {
		obs.ObserveProductLookup("miss")
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	obs.ObserveProductLookup("hit")
	common.JSONData(w, http.StatusOK, product)
}

// Categories lists all categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Service.Categories())
}

// CategoryProducts returns a category and its product collection.
func (h *Handler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, err := h.Service.CategoryByID(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "category not found", nil)
		return
	}
	products := h.Service.ProductsForCategory(id)
	common.JSONData(w, http.StatusOK, map[string]any{
		"category": category,
		"products": products,
		"count":    len(products),
	})
}

// Site returns site content metadata.
func (h *Handler) Site(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, h.Service.Site())
}

// Routes mounts catalog endpoints on the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/products", h.Products)
	r.Get("/products/{id}", h.ProductDetail)
	r.Get("/categories", h.Categories)
	r.Get("/categories/{id}/products", h.CategoryProducts)
	r.Get("/site", h.Site)
}
