package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

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

func testFinder() stubFinder {
	return stubFinder{
		"sp-1001": {ID: "sp-1001", Name: "Guardian Pro Hard Hat", Price: 100, PriceKnown: true},
		"sp-1002": {ID: "sp-1002", Name: "Impact Gloves", Price: 300, PriceKnown: true},
	}
}

func newTestService(bus *events.Bus) *Service {
	return NewService(NewStore(time.Hour), testFinder(), pricing.DefaultRates(), bus)
}

func TestAddItemDeduplicatesPerProduct(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")

	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 2)
	require.NoError(t, err)
	got, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 3)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	require.Equal(t, 5, got.Items[0].Qty)
	require.Equal(t, "sp-1001", got.Items[0].Product.ID)
}

func TestAddItemCoercesQuantityToOne(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")

	got, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, 1, got.Items[0].Qty)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")

	_, err := svc.AddItem(context.Background(), c.ID, "nope", 1)
	require.Error(t, err)

	got, ok := svc.Get(c.ID)
	require.True(t, ok)
	require.Empty(t, got.Items)
}

func TestUpdateQtyZeroRemovesLine(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 2)
	require.NoError(t, err)

	got, err := svc.UpdateQty(context.Background(), c.ID, "sp-1001", 0)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestUpdateQtyAbsentProductIsNoOp(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 2)
	require.NoError(t, err)

	got, err := svc.UpdateQty(context.Background(), c.ID, "sp-1002", 4)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, 2, got.Items[0].Qty)
}

func TestRemoveAbsentProductLeavesCartUnchanged(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)

	got, err := svc.RemoveItem(context.Background(), c.ID, "sp-1002")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
}

func TestBreakdownMatchesPricingEngine(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 3)
	require.NoError(t, err)

	got, ok := svc.Get(c.ID)
	require.True(t, ok)
	b := svc.Breakdown(got)

	require.InDelta(t, 300.0, b.Subtotal, 1e-9)
	require.InDelta(t, 45.0, b.Discount, 1e-9)
	require.InDelta(t, 75.0, b.DeliveryFee, 1e-9)
	require.InDelta(t, 357.225, b.Total, 1e-9)

	again := svc.Breakdown(got)
	require.Equal(t, b, again)
}

func TestCartMutationsEmitEvents(t *testing.T) {
	var topics []string
	bus := &events.Bus{Notifiers: []events.Notifier{
		events.NotifierFunc(func(_ context.Context, ev events.Event) error {
			topics = append(topics, ev.Topic)
			return nil
		}),
	}}
	svc := newTestService(bus)
	c := svc.Ensure("")

	_, err := svc.AddItem(context.Background(), c.ID, "sp-1001", 1)
	require.NoError(t, err)
	_, err = svc.RemoveItem(context.Background(), c.ID, "sp-1001")
	require.NoError(t, err)

	require.Equal(t, []string{
		events.TopicCartItemAdded,
		events.TopicCartUpdated,
		events.TopicCartItemRemoved,
		events.TopicCartUpdated,
	}, topics)
}

func TestRemoveAbsentProductEmitsNothing(t *testing.T) {
	count := 0
	bus := &events.Bus{Notifiers: []events.Notifier{
		events.NotifierFunc(func(context.Context, events.Event) error {
			count++
			return nil
		}),
	}}
	svc := newTestService(bus)
	c := svc.Ensure("")

	_, err := svc.RemoveItem(context.Background(), c.ID, "sp-1001")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestEnsureReusesLiveCart(t *testing.T) {
	svc := newTestService(nil)
	first := svc.Ensure("session-1")
	_, err := svc.AddItem(context.Background(), first.ID, "sp-1001", 1)
	require.NoError(t, err)

	again := svc.Ensure("session-1")
	require.Equal(t, first.ID, again.ID)
	require.Len(t, again.Items, 1)
}

func TestStoreExpiresCarts(t *testing.T) {
	current := time.Now()
	store := NewStore(time.Minute).WithClock(func() time.Time { return current })
	svc := NewService(store, testFinder(), pricing.DefaultRates(), nil)

	c := svc.Ensure("session-1")
	_, ok := svc.Get(c.ID)
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = svc.Get(c.ID)
	require.False(t, ok)

	fresh := svc.Ensure("session-1")
	require.Empty(t, fresh.Items)
}

func TestClearKeepsCartAlive(t *testing.T) {
	svc := newTestService(nil)
	c := svc.Ensure("")
	_, err := svc.AddItem(context.Background(), c.ID, "sp-1002", 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), c.ID))
	got, ok := svc.Get(c.ID)
	require.True(t, ok)
	require.Empty(t, got.Items)
}
