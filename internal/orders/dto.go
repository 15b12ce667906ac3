package orders

import (
	"time"

	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
)

// OrderDTO is the confirmation view of a placed order.
type OrderDTO struct {
	ID            string             `json:"id"`
	Status        enums.OrderStatus  `json:"status"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	CardLast4     string             `json:"cardLast4"`
	Items         []models.OrderItem `json:"items"`
	ItemCount     int                `json:"itemCount"`
	TotalPrice    int64              `json:"totalPrice"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	return &OrderDTO{
		ID:            order.ID,
		Status:        order.Status,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Address:       order.Address,
		City:          order.City,
		CardLast4:     order.CardLast4,
		Items:         items,
		ItemCount:     order.ItemCount,
		TotalPrice:    order.TotalPrice,
		CreatedAt:     order.CreatedAt,
	}
}
