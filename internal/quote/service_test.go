package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vellum-supply/storefront/internal/cart"
	"github.com/vellum-supply/storefront/internal/catalog"
	"github.com/vellum-supply/storefront/internal/events"
	"github.com/vellum-supply/storefront/internal/pricing"
)

type stubFinder map[string]catalog.Product

func (f stubFinder) FindProduct(id string) (catalog.Product, error) {
	p, ok := f[id]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return p, nil
}

func newTestCartService() *cart.Service {
	finder := stubFinder{
		"sp-1001": {ID: "sp-1001", Name: "Guardian Pro Hard Hat", Price: 100, PriceKnown: true},
	}
	return cart.NewService(cart.NewStore(time.Hour), finder, pricing.DefaultRates(), nil)
}

func validContact() Contact {
	return Contact{
		CompanyName: "Ridgeview Builders",
		ContactName: "Sam Alvarez",
		Email:       "sam@ridgeview.example",
	}
}

func TestSubmitSnapshotsCartAndClearsIt(t *testing.T) {
	carts := newTestCartService()
	svc := NewService(carts, nil)

	c := carts.Ensure("session-1")
	_, err := carts.AddItem(context.Background(), c.ID, "sp-1001", 3)
	require.NoError(t, err)

	q, err := svc.Submit(context.Background(), c.ID, validContact())
	require.NoError(t, err)

	require.Equal(t, StatusSubmitted, q.Status)
	require.Equal(t, 1, q.ItemCount)
	require.Len(t, q.Items, 1)
	require.InDelta(t, 357.225, q.Pricing.Total, 1e-9)
	require.Regexp(t, `^Q-\d{4}-\d{4}$`, q.Number)

	// Submitting clears the cart but leaves it usable.
	after, ok := carts.Get(c.ID)
	require.True(t, ok)
	require.Empty(t, after.Items)

	// The snapshot does not change when the cart is reused.
	_, err = carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)
	got, ok := svc.Get(q.ID)
	require.True(t, ok)
	require.Equal(t, 1, got.ItemCount)
	require.InDelta(t, 357.225, got.Pricing.Total, 1e-9)
}

func TestSubmitRejectsInvalidContact(t *testing.T) {
	carts := newTestCartService()
	svc := NewService(carts, nil)
	c := carts.Ensure("session-1")
	_, err := carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)

	contact := validContact()
	contact.Email = "not-an-email"
	_, err = svc.Submit(context.Background(), c.ID, contact)
	require.Error(t, err)

	contact = validContact()
	contact.CompanyName = ""
	_, err = svc.Submit(context.Background(), c.ID, contact)
	require.Error(t, err)
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	carts := newTestCartService()
	svc := NewService(carts, nil)
	c := carts.Ensure("session-1")

	_, err := svc.Submit(context.Background(), c.ID, validContact())
	require.Error(t, err)
}

func TestSubmitUnknownCart(t *testing.T) {
	svc := NewService(newTestCartService(), nil)
	_, err := svc.Submit(context.Background(), "missing", validContact())
	require.Error(t, err)
}

func TestSubmitEmitsEvent(t *testing.T) {
	var got events.Event
	bus := &events.Bus{Notifiers: []events.Notifier{
		events.NotifierFunc(func(_ context.Context, ev events.Event) error {
			got = ev
			return nil
		}),
	}}
	carts := newTestCartService()
	svc := NewService(carts, bus)
	c := carts.Ensure("session-1")
	_, err := carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), c.ID, validContact())
	require.NoError(t, err)
	require.Equal(t, events.TopicQuoteSubmitted, got.Topic)
	require.Equal(t, c.ID, got.SessionID)
}

func TestListIncludesSeededHistory(t *testing.T) {
	svc := NewService(newTestCartService(), nil)

	quotes := svc.List("any-session")
	require.Len(t, quotes, 3)

	numbers := make([]string, 0, len(quotes))
	for _, q := range quotes {
		numbers = append(numbers, q.Number)
	}
	require.Contains(t, numbers, "Q-2025-0117")
	require.Contains(t, numbers, "Q-2025-0142")
	require.Contains(t, numbers, "Q-2024-0089")
}

func TestListScopesOwnQuotesToSession(t *testing.T) {
	carts := newTestCartService()
	svc := NewService(carts, nil)
	c := carts.Ensure("session-1")
	_, err := carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), c.ID, validContact())
	require.NoError(t, err)

	require.Len(t, svc.List(c.ID), 4)
	require.Len(t, svc.List("other-session"), 3)
}

func TestQuoteNumbersIncrementPerYear(t *testing.T) {
	carts := newTestCartService()
	fixed := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(carts, nil).WithClock(func() time.Time { return fixed })

	c := carts.Ensure("session-1")
	_, err := carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)
	first, err := svc.Submit(context.Background(), c.ID, validContact())
	require.NoError(t, err)
	require.Equal(t, "Q-2026-0001", first.Number)

	_, err = carts.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), c.ID, validContact())
	require.NoError(t, err)
	require.Equal(t, "Q-2026-0002", second.Number)
}
