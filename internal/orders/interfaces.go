package orders

import (
	"context"

	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
}
