package catalog

import (
	"slices"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
)

// Product is a read-only catalog listing. Prices are whole Pakistani rupees.
type Product struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       int64                  `json:"price"`
	Image       string                 `json:"image"`
	DataAIHint  string                 `json:"dataAiHint,omitempty"`
	Specs       []string               `json:"specs"`
	Description string                 `json:"description"`
	Featured    bool                   `json:"featured,omitempty"`
	Condition   enums.ProductCondition `json:"condition,omitempty"`
}

func (p Product) clone() Product {
	p.Specs = slices.Clone(p.Specs)
	return p
}
