package enums

import "fmt"

// OrderStatus tracks a simulated storefront order. Orders are only ever
// placed; there is no payment capture behind them.
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
