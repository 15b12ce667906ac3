package enums

// EventType names the domain events the storefront publishes.
type EventType string

const (
	EventTypeOrderPlaced       EventType = "order.placed"
	EventTypeExchangeRequested EventType = "exchange.requested"
)

func (e EventType) String() string {
	return string(e)
}
