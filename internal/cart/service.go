package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vellum-supply/storefront/internal/catalog"
	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/events"
	"github.com/vellum-supply/storefront/internal/pricing"
)

// ProductFinder resolves product ids to canonical products.
type ProductFinder interface {
	FindProduct(id string) (catalog.Product, error)
}

// LineItem is a product snapshot plus quantity. At most one line item exists
// per product id.
type LineItem struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Cart is a snapshot of one session's cart.
type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type record struct {
	cart      Cart
	expiresAt time.Time
}

// Store keeps carts in memory with TTL-based expiry. There is no persistence
// layer behind it; a restart loses all carts.
type Store struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	carts map[string]*record
}

// NewStore constructs a Store. A non-positive TTL disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		now:   time.Now,
		carts: make(map[string]*record),
	}
}

// WithClock overrides the time source. Test hook.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Store) get(id string) (*record, bool) {
	rec, ok := s.carts[id]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().After(rec.expiresAt) {
		delete(s.carts, id)
		return nil, false
	}
	return rec, true
}

func (s *Store) touch(rec *record) {
	now := s.now()
	rec.cart.UpdatedAt = now
	if s.ttl > 0 {
		rec.expiresAt = now.Add(s.ttl)
	}
}

// Service owns cart mutations and enforces the dedup invariant.
type Service struct {
	Store  *Store
	Finder ProductFinder
	Rates  pricing.Rates
	Bus    *events.Bus
	NewID  func() string
}

// NewService wires a cart service.
func NewService(store *Store, finder ProductFinder, rates pricing.Rates, bus *events.Bus) *Service {
	return &Service{
		Store:  store,
		Finder: finder,
		Rates:  rates,
		Bus:    bus,
		NewID:  uuid.NewString,
	}
}

// Ensure returns the cart for the given id, creating a fresh one when the id
// is empty or unknown (including expired carts).
func (s *Service) Ensure(id string) Cart {
	s.Store.mu.Lock()
	defer s.Store.mu.Unlock()
	if id != "" {
		if rec, ok := s.Store.get(id); ok {
			s.Store.touch(rec)
			return snapshot(rec.cart)
		}
	}
	if id == "" {
		id = s.NewID()
	}
	now := s.Store.now()
	rec := &record{
		cart:      Cart{ID: id, CreatedAt: now, UpdatedAt: now},
		expiresAt: now.Add(s.Store.ttl),
	}
	s.Store.carts[id] = rec
	return snapshot(rec.cart)
}

// Get returns the cart snapshot when present.
func (s *Service) Get(id string) (Cart, bool) {
	s.Store.mu.Lock()
	defer s.Store.mu.Unlock()
	rec, ok := s.Store.get(id)
	if !ok {
		return Cart{}, false
	}
	return snapshot(rec.cart), true
}

// AddItem adds a product to the cart, incrementing the quantity when a line
// item for the same product id already exists. Quantities below one are
// coerced to one rather than rejected.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, qty int) (Cart, error) {
	if qty < 1 {
		qty = 1
	}
	product, err := s.Finder.FindProduct(productID)
	if err != nil {
		return Cart{}, common.NotFound("product not found")
	}

	s.Store.mu.Lock()
	rec, ok := s.Store.get(cartID)
	if !ok {
		s.Store.mu.Unlock()
		return Cart{}, common.NotFound("cart not found")
	}
	found := false
	for i := range rec.cart.Items {
		if rec.cart.Items[i].Product.ID == product.ID {
			rec.cart.Items[i].Qty += qty
			found = true
			break
		}
	}
	if !found {
		rec.cart.Items = append(rec.cart.Items, LineItem{Product: product, Qty: qty})
	}
	s.Store.touch(rec)
	result := snapshot(rec.cart)
	s.Store.mu.Unlock()

	s.emit(ctx, events.TopicCartItemAdded, cartID, product.Name, qty)
	s.emit(ctx, events.TopicCartUpdated, cartID, product.Name, qty)
	return result, nil
}

// UpdateQty sets the absolute quantity for a line item. A quantity of zero
// or below removes the line, identical to RemoveItem. Updating an absent
// product id is a silent no-op.
func (s *Service) UpdateQty(ctx context.Context, cartID, productID string, qty int) (Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}

	s.Store.mu.Lock()
	rec, ok := s.Store.get(cartID)
	if !ok {
		s.Store.mu.Unlock()
		return Cart{}, common.NotFound("cart not found")
	}
	changed := false
	for i := range rec.cart.Items {
		if rec.cart.Items[i].Product.ID == productID {
			rec.cart.Items[i].Qty = qty
			changed = true
			break
		}
	}
	if changed {
		s.Store.touch(rec)
	}
	result := snapshot(rec.cart)
	s.Store.mu.Unlock()

	if changed {
		s.emit(ctx, events.TopicCartUpdated, cartID, "", qty)
	}
	return result, nil
}

// RemoveItem deletes a line item. Removing an absent product id leaves the
// cart unchanged.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (Cart, error) {
	s.Store.mu.Lock()
	rec, ok := s.Store.get(cartID)
	if !ok {
		s.Store.mu.Unlock()
		return Cart{}, common.NotFound("cart not found")
	}
	removedName := ""
	items := rec.cart.Items[:0]
	for _, item := range rec.cart.Items {
		if item.Product.ID == productID {
			removedName = item.Product.Name
			continue
		}
		items = append(items, item)
	}
	rec.cart.Items = items
	if removedName != "" {
		s.Store.touch(rec)
	}
	result := snapshot(rec.cart)
	s.Store.mu.Unlock()

	if removedName != "" {
		s.emit(ctx, events.TopicCartItemRemoved, cartID, removedName, 0)
		s.emit(ctx, events.TopicCartUpdated, cartID, removedName, 0)
	}
	return result, nil
}

// Clear empties the cart, keeping the cart itself alive.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	s.Store.mu.Lock()
	rec, ok := s.Store.get(cartID)
	if !ok {
		s.Store.mu.Unlock()
		return common.NotFound("cart not found")
	}
	rec.cart.Items = nil
	s.Store.touch(rec)
	s.Store.mu.Unlock()

	s.emit(ctx, events.TopicCartUpdated, cartID, "", 0)
	return nil
}

// Breakdown derives the pricing breakdown for the cart's current contents.
// Pure with respect to cart state: computing it twice on an unchanged cart
// yields identical results.
func (s *Service) Breakdown(cart Cart) pricing.Breakdown {
	return pricing.Compute(PricingItems(cart.Items), s.Rates)
}

// PricingItems converts line items to pricing inputs. Products without a
// known price contribute zero, matching the storefront's fallback.
func PricingItems(items []LineItem) []pricing.Item {
	out := make([]pricing.Item, 0, len(items))
	for _, item := range items {
		out = append(out, pricing.Item{Qty: item.Qty, UnitPrice: item.Product.Price})
	}
	return out
}

func (s *Service) emit(ctx context.Context, topic, cartID, productName string, qty int) {
	if s.Bus == nil {
		return
	}
	_, _ = s.Bus.Emit(ctx, topic, cartID, map[string]any{
		"productName": productName,
		"qty":         qty,
	})
}

func snapshot(c Cart) Cart {
	out := c
	out.Items = make([]LineItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
