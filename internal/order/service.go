// Package order serves the demo order history. The storefront has no real
// fulfilment; orders are read-only seeded records.
package order

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status values an order can carry.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Order is a read-only order history record.
type Order struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	ItemCount int       `json:"itemCount"`
	PlacedAt  time.Time `json:"placedAt"`
}

// Service lists the seeded order history.
type Service struct {
	once   sync.Once
	orders []Order
}

// NewService constructs the order service.
func NewService() *Service {
	return &Service{}
}

// List returns all orders, newest first.
func (s *Service) List() []Order {
	s.seed()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Get resolves an order by id.
func (s *Service) Get(id string) (Order, bool) {
	s.seed()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (s *Service) seed() {
	s.once.Do(func() {
		s.orders = []Order{
			{
				ID:        uuid.NewString(),
				Number:    "VO-2025-0288",
				Status:    StatusProcessing,
				Amount:    4959.75,
				ItemCount: 12,
				PlacedAt:  time.Date(2025, time.August, 11, 10, 12, 0, 0, time.UTC),
			},
			{
				ID:        uuid.NewString(),
				Number:    "VO-2025-0231",
				Status:    StatusShipped,
				Amount:    862.50,
				ItemCount: 5,
				PlacedAt:  time.Date(2025, time.July, 2, 8, 40, 0, 0, time.UTC),
			},
			{
				ID:        uuid.NewString(),
				Number:    "VO-2025-0164",
				Status:    StatusDelivered,
				Amount:    312.20,
				ItemCount: 2,
				PlacedAt:  time.Date(2025, time.May, 19, 15, 3, 0, 0, time.UTC),
			},
		}
	})
}
