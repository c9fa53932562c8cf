package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusInCart    OrderStatus = "In Cart"
	OrderStatusOrdered   OrderStatus = "Ordered"
	OrderStatusCompleted OrderStatus = "Completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusInCart, OrderStatusOrdered, OrderStatusCompleted:
		return true
	}
	return false
}

// Order is a supplier order aggregating OrderRequests. TotalPrice is the sum
// of wholesale cost times quantity over all requests plus the freight charge,
// maintained incrementally by the mutation paths.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Supplier       string          `gorm:"size:180;not null" json:"supplier"`
	Status         OrderStatus     `gorm:"size:20;default:'In Cart';index" json:"status"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	FreightCharge  decimal.Decimal `gorm:"type:numeric(10,2)" json:"freight_charge"`
	TrackingNumber string          `gorm:"size:120" json:"tracking_number"`

	Items []OrderRequest `gorm:"foreignKey:OrderID" json:"items"`

	DateCreated   time.Time  `json:"date_created"`
	DateSubmitted *time.Time `json:"date_submitted"`
	DateCompleted *time.Time `json:"date_completed"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
