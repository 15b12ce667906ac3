package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hasan-Creations/MobiSwap/pkg/db/models"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/validation"
)

// SubmitInput is the trade-in form a shopper fills in.
type SubmitInput struct {
	CurrentModel string  `json:"currentModel" validate:"notblank,min=2,max=50"`
	Condition    string  `json:"condition" validate:"required,device_condition"`
	IMEI         *string `json:"imei,omitempty" validate:"omitempty,max=20"`
	Storage      *string `json:"storage,omitempty" validate:"omitempty,max=20"`
	Issues       *string `json:"issues,omitempty" validate:"omitempty,max=300"`
	DesiredModel *string `json:"desiredModel,omitempty" validate:"omitempty,max=50"`
	Name         string  `json:"name" validate:"notblank,min=2,max=50"`
	Phone        string  `json:"phone" validate:"required,phone11"`
	Email        string  `json:"email" validate:"required,email"`
}

// RequestDTO is the stored request as returned to the shopper.
type RequestDTO struct {
	ID           uuid.UUID             `json:"id"`
	Status       enums.ExchangeStatus  `json:"status"`
	CurrentModel string                `json:"currentModel"`
	Condition    enums.DeviceCondition `json:"condition"`
	IMEI         *string               `json:"imei,omitempty"`
	Storage      *string               `json:"storage,omitempty"`
	Issues       *string               `json:"issues,omitempty"`
	DesiredModel *string               `json:"desiredModel,omitempty"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// RequestedEvent is published once a request is stored. Contact details stay
// out of the event.
type RequestedEvent struct {
	RequestID    uuid.UUID             `json:"requestId"`
	CurrentModel string                `json:"currentModel"`
	Condition    enums.DeviceCondition `json:"condition"`
	Storage      *string               `json:"storage,omitempty"`
	DesiredModel *string               `json:"desiredModel,omitempty"`
}

type eventEmitter interface {
	Emit(ctx context.Context, eventType enums.EventType, aggregateID string, data any) bool
}

type Service struct {
	repo   Repository
	events eventEmitter
	log    *logger.Logger
}

func NewService(repo Repository, emitter eventEmitter, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("exchange repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{repo: repo, events: emitter, log: logg}, nil
}

// Submit validates and stores a trade-in request with status received.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*RequestDTO, error) {
	in.CurrentModel = strings.TrimSpace(in.CurrentModel)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.IMEI = trimOptional(in.IMEI)
	in.Storage = trimOptional(in.Storage)
	in.Issues = trimOptional(in.Issues)
	in.DesiredModel = trimOptional(in.DesiredModel)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	record := &models.ExchangeRequest{
		ID:           uuid.New(),
		CurrentModel: in.CurrentModel,
		Condition:    enums.DeviceCondition(in.Condition),
		IMEI:         in.IMEI,
		Storage:      in.Storage,
		Issues:       in.Issues,
		DesiredModel: in.DesiredModel,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Status:       enums.ExchangeStatusReceived,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist exchange request")
	}

	logCtx := s.log.WithFields(ctx, map[string]any{
		"exchange_request_id": created.ID.String(),
		"condition":           created.Condition.String(),
	})
	s.log.Info(logCtx, "exchange request received")

	if s.events != nil {
		s.events.Emit(logCtx, enums.EventTypeExchangeRequested, created.ID.String(), RequestedEvent{
			RequestID:    created.ID,
			CurrentModel: created.CurrentModel,
			Condition:    created.Condition,
			Storage:      created.Storage,
			DesiredModel: created.DesiredModel,
		})
	}
	return toDTO(created), nil
}

func toDTO(m *models.ExchangeRequest) *RequestDTO {
	return &RequestDTO{
		ID:           m.ID,
		Status:       m.Status,
		CurrentModel: m.CurrentModel,
		Condition:    m.Condition,
		IMEI:         m.IMEI,
		Storage:      m.Storage,
		Issues:       m.Issues,
		DesiredModel: m.DesiredModel,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		CreatedAt:    m.CreatedAt,
	}
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
