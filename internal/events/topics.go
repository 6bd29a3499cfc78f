package events

// Topic constants for domain events emitted by the storefront core.
const (
	TopicCartItemAdded       = "cart.item_added"
	TopicCartItemRemoved     = "cart.item_removed"
	TopicCartUpdated         = "cart.updated"
	TopicQuoteSubmitted      = "quote.submitted"
	TopicApplicationReceived = "application.received"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicCartItemAdded,
		TopicCartItemRemoved,
		TopicCartUpdated,
		TopicQuoteSubmitted,
		TopicApplicationReceived,
	}
}
