package events

// Topics emitted by the cart service.
const (
	// TopicOrderCreated fires after a checkout submission persists an order.
	TopicOrderCreated = "order.created"
	// TopicCartCleared fires when a session cart is explicitly emptied.
	TopicCartCleared = "cart.cleared"
)
