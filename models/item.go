package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCondition string

const (
	ItemConditionNew  ItemCondition = "New"
	ItemConditionUsed ItemCondition = "Used"
)

type Item struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:180;not null;index" json:"name"`
	UPC           string          `gorm:"size:40;index" json:"upc"`
	Category      string          `gorm:"size:80" json:"category"`
	Brand         string          `gorm:"size:80" json:"brand"`
	Condition     ItemCondition   `gorm:"size:10;default:'New'" json:"condition"`
	StandardPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"standard_price"`
	WholesaleCost decimal.Decimal `gorm:"type:numeric(10,2)" json:"wholesale_cost"`
	Stock         int             `json:"stock"`
	WarningStock  int             `json:"warning_stock"`
	DesiredStock  int             `json:"desired_stock"`

	// Managed items (e.g. the sales tax line) are maintained by the system:
	// customers cannot remove them from a transaction and stock is not tracked.
	Managed  bool `gorm:"default:false;index" json:"managed"`
	Hidden   bool `gorm:"default:false" json:"hidden"`
	Disabled bool `gorm:"default:false" json:"disabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
