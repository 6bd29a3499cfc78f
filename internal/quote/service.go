package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vellum-supply/storefront/internal/cart"
	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/events"
	"github.com/vellum-supply/storefront/internal/pricing"
)

// Status values a quote can carry. Submitted quotes start at StatusSubmitted;
// the other statuses appear on the seeded demo history.
const (
	StatusSubmitted = "submitted"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusExpired   = "expired"
)

// Contact is the requester information attached to a quote.
type Contact struct {
	CompanyName string `json:"companyName" validate:"required"`
	ContactName string `json:"contactName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

// Quote is an immutable snapshot of a cart at submission time.
type Quote struct {
	ID        string            `json:"id"`
	Number    string            `json:"number"`
	SessionID string            `json:"sessionId,omitempty"`
	Status    string            `json:"status"`
	Contact   *Contact          `json:"contact,omitempty"`
	Items     []cart.LineItem   `json:"items,omitempty"`
	Pricing   pricing.Breakdown `json:"pricing"`
	ItemCount int               `json:"itemCount"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CartSource is the slice of the cart service the quote flow needs.
type CartSource interface {
	Get(id string) (cart.Cart, bool)
	Breakdown(c cart.Cart) pricing.Breakdown
	Clear(ctx context.Context, cartID string) error
}

// Service snapshots carts into quote requests and keeps them in memory.
type Service struct {
	Carts    CartSource
	Bus      *events.Bus
	Validate *validator.Validate

	mu     sync.Mutex
	now    func() time.Time
	seq    int
	quotes []Quote
}

// NewService wires a quote service seeded with the demo quote history.
func NewService(carts CartSource, bus *events.Bus) *Service {
	s := &Service{
		Carts:    carts,
		Bus:      bus,
		Validate: validator.New(),
		now:      time.Now,
	}
	s.quotes = seedQuotes()
	return s
}

// Submit validates the contact payload, snapshots the cart and its pricing
// breakdown, clears the cart, and records the quote.
func (s *Service) Submit(ctx context.Context, cartID string, contact Contact) (Quote, error) {
	if err := s.Validate.Struct(contact); err != nil {
		return Quote{}, common.BadRequest("invalid quote contact", err.Error())
	}
	c, ok := s.Carts.Get(cartID)
	if !ok {
		return Quote{}, common.NotFound("cart not found")
	}
	if len(c.Items) == 0 {
		return Quote{}, common.BadRequest("cart is empty", nil)
	}
	breakdown := s.Carts.Breakdown(c)

	s.mu.Lock()
	s.seq++
	now := s.now()
	q := Quote{
		ID:        uuid.NewString(),
		Number:    fmt.Sprintf("Q-%d-%04d", now.Year(), s.seq),
		SessionID: cartID,
		Status:    StatusSubmitted,
		Contact:   &contact,
		Items:     c.Items,
		Pricing:   breakdown,
		ItemCount: len(c.Items),
		CreatedAt: now,
	}
	s.quotes = append(s.quotes, q)
	s.mu.Unlock()

	if err := s.Carts.Clear(ctx, cartID); err != nil {
		return Quote{}, err
	}
	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicQuoteSubmitted, cartID, map[string]any{
			"number": q.Number,
			"total":  q.Pricing.Total,
		})
	}
	return q, nil
}

// List returns the demo quote history plus quotes submitted by the session.
func (s *Service) List(sessionID string) []Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		if q.SessionID == "" || q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out
}

// Get resolves a quote by id.
func (s *Service) Get(id string) (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// seedQuotes returns the demo quote history shown to every session.
func seedQuotes() []Quote {
	return []Quote{
		{
			ID:        uuid.NewString(),
			Number:    "Q-2025-0117",
			Status:    StatusApproved,
			Pricing:   pricing.Breakdown{Total: 4959.75},
			ItemCount: 12,
			CreatedAt: time.Date(2025, time.June, 3, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.NewString(),
			Number:    "Q-2025-0142",
			Status:    StatusPending,
			Pricing:   pricing.Breakdown{Total: 1280.40},
			ItemCount: 4,
			CreatedAt: time.Date(2025, time.July, 18, 9, 5, 0, 0, time.UTC),
		},
		{
			ID:        uuid.NewString(),
			Number:    "Q-2024-0089",
			Status:    StatusExpired,
			Pricing:   pricing.Breakdown{Total: 763.12},
			ItemCount: 3,
			CreatedAt: time.Date(2024, time.November, 22, 16, 45, 0, 0, time.UTC),
		},
	}
}
