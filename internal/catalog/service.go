package catalog

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/fixtures"
)

// ErrProductNotFound is returned when no collection contains the product id.
var ErrProductNotFound = errors.New("catalog: product not found")

// ErrCategoryNotFound is returned when the category id is unknown.
var ErrCategoryNotFound = errors.New("catalog: category not found")

// ContactForPricing is the display label for products without a usable price.
const ContactForPricing = "Contact for pricing"

const (
	defaultCategoryIcon  = "box"
	defaultCategoryColor = "#667eea"
)

// Collection identifiers in lookup priority order.
const (
	CollectionSafetyProducts = "safety-products"
	CollectionSafetyShirts   = "safety-shirts"
	CollectionSafetyFootwear = "safety-footwear"
	CollectionGeneral        = "general"
)

// VolumeTier is a display-only volume pricing row. Tiers never change
// computed cart totals.
type VolumeTier struct {
	MinQty    int     `json:"minQty"`
	MaxQty    *int    `json:"maxQty,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Savings   float64 `json:"savings"`
}

// Label renders the quantity range the way the storefront displays it.
func (t VolumeTier) Label() string {
	if t.MaxQty != nil {
		return strconv.Itoa(t.MinQty) + "-" + strconv.Itoa(*t.MaxQty)
	}
	return strconv.Itoa(t.MinQty) + "+"
}

// TierFor returns the volume tier matching a quantity, or nil when the
// product has no tier covering it. Display-only.
func (p Product) TierFor(qty int) *VolumeTier {
	for i := range p.VolumePricing {
		t := p.VolumePricing[i]
		if qty >= t.MinQty && (t.MaxQty == nil || qty <= *t.MaxQty) {
			return &t
		}
	}
	return nil
}

// Image is a normalised product image.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// Product is the canonical product representation. Fixture collections carry
// divergent shapes (name vs title, price vs price_numeric); normalisation
// happens once here so nothing downstream branches on field presence.
type Product struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Price         float64      `json:"price"`
	PriceKnown    bool         `json:"priceKnown"`
	PriceLabel    string       `json:"priceLabel,omitempty"`
	Vendor        string       `json:"vendor,omitempty"`
	SKU           string       `json:"sku,omitempty"`
	ProductType   string       `json:"productType,omitempty"`
	CategoryID    string       `json:"categoryId,omitempty"`
	Description   string       `json:"description,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	Images        []Image      `json:"images,omitempty"`
	InStock       bool         `json:"inStock"`
	VolumePricing []VolumeTier `json:"volumePricing,omitempty"`
	Collection    string       `json:"collection"`
}

// Category is the public category payload.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// ListParams captures filters for product listing.
type ListParams struct {
	Query string
	Sort  string
	Page  int
	Limit int
}

// ListResult contains list data and pagination counts.
type ListResult struct {
	Items []Product
	Total int
	Page  int
	Limit int
}

type collection struct {
	name     string
	products []Product
}

// Service resolves products and categories from the fixture collections.
// All data is read-only after construction.
type Service struct {
	collections []collection
	categories  []Category
	site        fixtures.Site
}

// NewService normalises the fixture data into the canonical catalog.
func NewService(cols *fixtures.Collections) (*Service, error) {
	if cols == nil {
		return nil, errors.New("catalog: fixture collections are required")
	}
	s := &Service{
		// Priority order matters: FindProduct returns the first match.
		collections: []collection{
			{name: CollectionSafetyProducts, products: normalizeAll(cols.SafetyProducts, CollectionSafetyProducts)},
			{name: CollectionSafetyShirts, products: normalizeAll(cols.SafetyShirts, CollectionSafetyShirts)},
			{name: CollectionSafetyFootwear, products: normalizeAll(cols.SafetyFootwear, CollectionSafetyFootwear)},
			{name: CollectionGeneral, products: normalizeAll(cols.GeneralProducts, CollectionGeneral)},
		},
		site: cols.Site,
	}
	s.categories = make([]Category, 0, len(cols.Categories))
	for _, raw := range cols.Categories {
		s.categories = append(s.categories, normalizeCategory(raw))
	}
	return s, nil
}

// FindProduct scans each collection in priority order and returns the first
// product whose id matches by string comparison.
func (s *Service) FindProduct(id string) (Product, error) {
	needle := strings.TrimSpace(id)
	if needle == "" {
		return Product{}, ErrProductNotFound
	}
	for _, col := range s.collections {
		for _, p := range col.products {
			if p.ID == needle {
				return p, nil
			}
		}
	}
	return Product{}, ErrProductNotFound
}

// ProductCount reports the total number of products across all collections.
func (s *Service) ProductCount() int {
	n := 0
	for _, col := range s.collections {
		n += len(col.products)
	}
	return n
}

// Categories returns all categories in fixture order.
func (s *Service) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByID resolves a category by identifier.
func (s *Service) CategoryByID(id string) (Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

// ProductsForCategory returns the products belonging to a category. Three
// category ids route to dedicated collections; everything else filters the
// general collection by its categoryId field. The result depends only on the
// requested category, never on prior selections.
func (s *Service) ProductsForCategory(categoryID string) []Product {
	switch categoryID {
	case "safety-equipment":
		return s.collectionProducts(CollectionSafetyProducts)
	case "construction-safety-shirts":
		return s.collectionProducts(CollectionSafetyShirts)
	case "safety-footwear":
		return s.collectionProducts(CollectionSafetyFootwear)
	}
	var out []Product
	for _, p := range s.collectionProducts(CollectionGeneral) {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// List returns products across all collections with search, sort, and
// offset pagination applied.
func (s *Service) List(params ListParams) ListResult {
	items := s.allProducts()
	if q := strings.ToLower(strings.TrimSpace(params.Query)); q != "" {
		filtered := items[:0]
		for _, p := range items {
			if matchesQuery(p, q) {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}
	sortProducts(items, params.Sort)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = len(items)
	}
	total := len(items)
	start, end := common.PageSlice(total, page, limit)
	return ListResult{Items: items[start:end], Total: total, Page: page, Limit: limit}
}

// Site returns site content with fallback defaults for absent fields.
func (s *Service) Site() fixtures.Site {
	site := s.site
	if strings.TrimSpace(site.Name) == "" {
		site.Name = "Vellum"
	}
	return site
}

func (s *Service) collectionProducts(name string) []Product {
	for _, col := range s.collections {
		if col.name == name {
			out := make([]Product, len(col.products))
			copy(out, col.products)
			return out
		}
	}
	return nil
}

func (s *Service) allProducts() []Product {
	var out []Product
	for _, col := range s.collections {
		out = append(out, col.products...)
	}
	return out
}

func matchesQuery(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Vendor), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortProducts(items []Product, order string) {
	switch order {
	case "price-asc":
		sort.SliceStable(items, func(i, j int) bool {
			return priceSortKey(items[i]) < priceSortKey(items[j])
		})
	case "price-desc":
		sort.SliceStable(items, func(i, j int) bool {
			return priceSortKey(items[i]) > priceSortKey(items[j])
		})
	case "name":
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	default:
		// featured: fixture order
	}
}

func priceSortKey(p Product) float64 {
	if !p.PriceKnown {
		return 0
	}
	return p.Price
}

func normalizeAll(raws []fixtures.RawProduct, collectionName string) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, normalize(raw, collectionName))
	}
	return out
}

func normalize(raw fixtures.RawProduct, collectionName string) Product {
	p := Product{
		ID:          string(raw.ID),
		Name:        firstNonEmpty(raw.Name, raw.Title),
		Vendor:      firstNonEmpty(raw.Vendor, raw.Brand),
		SKU:         raw.SKU,
		ProductType: raw.ProductType,
		CategoryID:  raw.CategoryID,
		Description: raw.Description,
		Tags:        raw.Tags,
		InStock:     raw.InStock == nil || *raw.InStock,
		Collection:  collectionName,
	}

	switch {
	case raw.PriceNumeric != nil:
		p.Price = *raw.PriceNumeric
		p.PriceKnown = true
	case raw.Price != nil && raw.Price.Value != nil:
		p.Price = *raw.Price.Value
		p.PriceKnown = true
	default:
		p.PriceLabel = ContactForPricing
		if raw.Price != nil && strings.TrimSpace(raw.Price.Label) != "" {
			p.PriceLabel = raw.Price.Label
		}
	}

	for _, img := range raw.Images {
		p.Images = append(p.Images, Image{Src: img.Src, Alt: img.Alt})
	}
	if len(p.Images) == 0 && strings.TrimSpace(raw.Image) != "" {
		p.Images = []Image{{Src: raw.Image, Alt: p.Name}}
	}

	for _, tier := range raw.VolumePricing {
		savings := 0.0
		if tier.Savings != nil {
			savings = *tier.Savings
		}
		p.VolumePricing = append(p.VolumePricing, VolumeTier{
			MinQty:    tier.MinQty,
			MaxQty:    tier.MaxQty,
			UnitPrice: tier.Price,
			Savings:   savings,
		})
	}
	return p
}

func normalizeCategory(raw fixtures.RawCategory) Category {
	c := Category{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Icon:        raw.Icon,
		Color:       raw.Color,
	}
	if strings.TrimSpace(c.Icon) == "" {
		c.Icon = defaultCategoryIcon
	}
	if strings.TrimSpace(c.Color) == "" {
		c.Color = defaultCategoryColor
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
