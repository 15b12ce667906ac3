package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
)

// ExchangeRequest captures a shopper's offer to trade in their current phone.
type ExchangeRequest struct {
	ID           uuid.UUID             `gorm:"column:id;primaryKey"`
	CurrentModel string                `gorm:"column:current_model;not null"`
	Condition    enums.DeviceCondition `gorm:"column:condition;not null"`
	IMEI         *string               `gorm:"column:imei"`
	Storage      *string               `gorm:"column:storage"`
	Issues       *string               `gorm:"column:issues"`
	DesiredModel *string               `gorm:"column:desired_model"`
	Name         string                `gorm:"column:name;not null"`
	Phone        string                `gorm:"column:phone;not null"`
	Email        string                `gorm:"column:email;not null"`
	Status       enums.ExchangeStatus  `gorm:"column:status;not null;default:'received'"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (ExchangeRequest) TableName() string { return "exchange_requests" }
