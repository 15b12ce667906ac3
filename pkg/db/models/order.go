package models

import (
	"time"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
)

// Order persists a simulated storefront order together with the cart snapshot
// it was placed from.
type Order struct {
	ID            string            `gorm:"column:id;primaryKey"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'placed'"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerEmail string            `gorm:"column:customer_email;not null"`
	Address       string            `gorm:"column:address;not null"`
	City          string            `gorm:"column:city;not null"`
	CardLast4     string            `gorm:"column:card_last4;not null"`
	Items         OrderItems        `gorm:"column:items;type:text;serializer:json;not null"`
	ItemCount     int               `gorm:"column:item_count;not null"`
	TotalPrice    int64             `gorm:"column:total_price;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is the frozen copy of a cart line item at checkout time.
type OrderItem struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	UnitPrice int64    `json:"unitPrice"`
	Image     string   `json:"image,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Specs     []string `json:"specs,omitempty"`
	Quantity  int      `json:"quantity"`
	LineTotal int64    `json:"lineTotal"`
}

type OrderItems []OrderItem
