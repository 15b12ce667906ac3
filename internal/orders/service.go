package orders

import (
	"context"
	"strings"

	"github.com/Hasan-Creations/MobiSwap/pkg/db"
	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
)

// Service exposes order persistence to checkout and the confirmation page.
type Service interface {
	Create(ctx context.Context, order *models.Order) (*OrderDTO, error)
	Get(ctx context.Context, id string) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, order *models.Order) (*OrderDTO, error) {
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id string) (*OrderDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}
