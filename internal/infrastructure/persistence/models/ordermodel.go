package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderModel struct {
	ID           uint           `gorm:"primaryKey"`
	PaymentToken string         `gorm:"size:64;not null;uniqueIndex"`
	TotalAmount  string         `gorm:"size:32;not null"`
	Currency     string         `gorm:"size:8;not null;default:'USD'"`
	Items        datatypes.JSON `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemRecord is the JSON shape of one line item inside
// OrderModel.Items.
type OrderItemRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}
