package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Repair struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:180;not null" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Disabled    bool            `gorm:"default:false" json:"disabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
