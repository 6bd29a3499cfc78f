package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vellum-supply/storefront/internal/events"
)

// Bridge turns cart domain events into toast notifications, mirroring the
// storefront's add/remove feedback.
type Bridge struct {
	Center *Center
}

type cartEventPayload struct {
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
}

// Notify implements events.Notifier.
func (b Bridge) Notify(_ context.Context, ev events.Event) error {
	if b.Center == nil || ev.SessionID == "" {
		return nil
	}
	var payload cartEventPayload
	if len(ev.Payload) > 0 {
		_ = json.Unmarshal(ev.Payload, &payload)
	}
	switch ev.Topic {
	case events.TopicCartItemAdded:
		msg := fmt.Sprintf("%s added to cart", payload.ProductName)
		if payload.Qty > 1 {
			msg = fmt.Sprintf("%d × %s added to cart", payload.Qty, payload.ProductName)
		}
		// The cart lives on the quotes screen, hence the action target.
		b.Center.Show(ev.SessionID, msg, &Action{Label: "View Cart", Screen: "quotes"})
	case events.TopicCartItemRemoved:
		b.Center.Show(ev.SessionID, fmt.Sprintf("%s removed from cart", payload.ProductName), nil)
	}
	return nil
}
