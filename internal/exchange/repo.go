package exchange

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
)

// Repository persists exchange requests.
type Repository interface {
	Create(ctx context.Context, req *models.ExchangeRequest) (*models.ExchangeRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *models.ExchangeRequest) (*models.ExchangeRequest, error) {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error) {
	var req models.ExchangeRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}
