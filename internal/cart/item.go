package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
)

// LineItem is a product in the cart together with how many units are wanted.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (li LineItem) Subtotal() int64 {
	return li.Price * int64(li.Quantity)
}

// Snapshot is the cart as returned to API callers.
type Snapshot struct {
	Items      []LineItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
	ItemCount  int        `json:"itemCount"`
}

var errMalformedSnapshot = errors.New("malformed cart snapshot")

func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

func decodeItems(raw []byte) ([]LineItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a json array", errMalformedSnapshot)
	}
	var items []LineItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedSnapshot, err)
	}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("%w: item %d has no id", errMalformedSnapshot, i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q has quantity %d", errMalformedSnapshot, item.ID, item.Quantity)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: item %q repeats", errMalformedSnapshot, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Specs = append([]string(nil), item.Specs...)
	}
	return out
}
