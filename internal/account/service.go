// Package account handles the mock business-account application flow.
// Applications are accepted, stored in memory, and never reviewed; the flow
// exists to drive the application-submitted screen.
package account

import (
	"context"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vellum-supply/storefront/internal/common"
	"github.com/vellum-supply/storefront/internal/events"
)

// Application is a business-account application payload.
type Application struct {
	CompanyName   string `json:"companyName" validate:"required"`
	ContactName   string `json:"contactName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	BusinessType  string `json:"businessType" validate:"required,oneof=contractor distributor retailer government other"`
	AnnualRevenue string `json:"annualRevenue"`
	Notes         string `json:"notes"`
}

// Receipt acknowledges a stored application.
type Receipt struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type stored struct {
	Application
	Receipt
}

// Service validates and stores applications.
type Service struct {
	Bus      *events.Bus
	Validate *validator.Validate

	mu   sync.Mutex
	now  func() time.Time
	apps []stored
}

// NewService constructs the account service.
func NewService(bus *events.Bus) *Service {
	return &Service{
		Bus:      bus,
		Validate: validator.New(),
		now:      time.Now,
	}
}

// Submit validates and stores an application, returning the receipt.
func (s *Service) Submit(ctx context.Context, sessionID string, app Application) (Receipt, error) {
	if err := s.Validate.Struct(app); err != nil {
		return Receipt{}, common.BadRequest("invalid application", err.Error())
	}
	s.mu.Lock()
	receipt := Receipt{
		ID:          uuid.NewString(),
		Status:      "received",
		SubmittedAt: s.now(),
	}
	s.apps = append(s.apps, stored{Application: app, Receipt: receipt})
	s.mu.Unlock()

	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicApplicationReceived, sessionID, map[string]any{
			"companyName":  app.CompanyName,
			"businessType": app.BusinessType,
		})
	}
	return receipt, nil
}

// Count reports how many applications have been received. Used by the
// readiness probe and tests.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}
