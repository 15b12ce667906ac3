package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Hasan-Creations/MobiSwap/internal/cart"
	"github.com/Hasan-Creations/MobiSwap/internal/orders"
	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/validation"
)

const maxIDAttempts = 3

// CheckoutInput is the simulated payment form. Only the last four card
// digits are ever stored.
type CheckoutInput struct {
	Name       string `json:"name" validate:"notblank,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"notblank,min=10,max=300"`
	City       string `json:"city" validate:"notblank,min=3,max=100"`
	CardNumber string `json:"cardNumber" validate:"required,card_number"`
	ExpiryDate string `json:"expiryDate" validate:"required,card_expiry"`
	CVC        string `json:"cvc" validate:"required,card_cvc"`
}

// OrderPlacedEvent is published after an order is stored.
type OrderPlacedEvent struct {
	OrderID    string             `json:"orderId"`
	Email      string             `json:"email"`
	City       string             `json:"city"`
	Items      []models.OrderItem `json:"items"`
	ItemCount  int                `json:"itemCount"`
	TotalPrice int64              `json:"totalPrice"`
	PlacedAt   time.Time          `json:"placedAt"`
}

type cartProvider interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (*orders.OrderDTO, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, eventType enums.EventType, aggregateID string, data any) bool
}

type Service struct {
	carts  cartProvider
	orders orderCreator
	events eventEmitter
	log    *logger.Logger
	now    func() time.Time
}

func NewService(carts cartProvider, orderSvc orderCreator, emitter eventEmitter, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart provider required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{carts: carts, orders: orderSvc, events: emitter, log: logg, now: time.Now}, nil
}

// PlaceOrder turns the session's cart into a stored order, announces it and
// empties the cart. No payment is taken.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, in CheckoutInput) (*orders.OrderDTO, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	placedAt := s.now()
	order := &models.Order{
		Status:        enums.OrderStatusPlaced,
		CustomerName:  in.Name,
		CustomerEmail: in.Email,
		Address:       in.Address,
		City:          in.City,
		CardLast4:     lastFour(in.CardNumber),
		Items:         toOrderItems(snap.Items),
		ItemCount:     snap.ItemCount,
		TotalPrice:    snap.TotalPrice,
	}

	var created *orders.OrderDTO
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		order.ID = orderID(placedAt.Add(time.Duration(attempt) * time.Millisecond))
		created, err = s.orders.Create(ctx, order)
		if err == nil || !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	logCtx := s.log.WithFields(s.log.WithSessionID(ctx, sessionID), map[string]any{
		"order_id":    created.ID,
		"item_count":  created.ItemCount,
		"total_price": created.TotalPrice,
	})
	s.log.Info(logCtx, "order placed")

	if s.events != nil {
		s.events.Emit(logCtx, enums.EventTypeOrderPlaced, created.ID, OrderPlacedEvent{
			OrderID:    created.ID,
			Email:      created.CustomerEmail,
			City:       created.City,
			Items:      created.Items,
			ItemCount:  created.ItemCount,
			TotalPrice: created.TotalPrice,
			PlacedAt:   placedAt.UTC(),
		})
	}

	store.Clear(ctx)
	return created, nil
}

func orderID(at time.Time) string {
	return fmt.Sprintf("MS-%d", at.UnixMilli())
}

func lastFour(cardNumber string) string {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func toOrderItems(items []cart.LineItem) models.OrderItems {
	out := make(models.OrderItems, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Image:     item.Image,
			Condition: item.Condition.String(),
			Specs:     append([]string(nil), item.Specs...),
			Quantity:  item.Quantity,
			LineTotal: item.Subtotal(),
		})
	}
	return out
}
