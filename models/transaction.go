package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	TransactionType string `gorm:"size:40;index" json:"transaction_type"`
	CustomerID      uint   `gorm:"index" json:"customer_id"`
	Customer        Customer `json:"customer"`
	Description     string   `gorm:"size:500" json:"description"`

	Complete     bool `gorm:"default:false;index" json:"complete"`
	IsPaid       bool `gorm:"default:false" json:"is_paid"`
	Urgent       bool `gorm:"default:false" json:"urgent"`
	Refurb       bool `gorm:"default:false" json:"refurb"`
	WaitingEmail bool `gorm:"default:false" json:"waiting_email"`

	// Employee transactions get wholesale-based pricing. Set at creation
	// time when the customer email matches a user account.
	Employee bool `gorm:"default:false" json:"employee"`

	TotalCost     decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_cost"`
	DateCreated   time.Time       `gorm:"index" json:"date_created"`
	DateCompleted *time.Time      `json:"date_completed"`

	Items         []TransactionItem   `json:"items"`
	Repairs       []TransactionRepair `json:"repairs"`
	Bikes         []Bike              `gorm:"many2many:transaction_bikes" json:"bikes"`
	OrderRequests []OrderRequest      `gorm:"many2many:transaction_order_requests" json:"order_requests"`
	Actions       []Action            `json:"actions"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionItem snapshots the price the item was sold at. Catalog price
// changes never reprice lines already on a transaction.
type TransactionItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID uint            `gorm:"index" json:"transaction_id"`
	ItemID        uint            `json:"item_id"`
	Item          Item            `json:"item"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TransactionRepair struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID uint            `gorm:"index" json:"transaction_id"`
	RepairID      uint            `json:"repair_id"`
	Repair        Repair          `json:"repair"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Completed     bool            `gorm:"default:false" json:"completed"`
	CreatedAt     time.Time       `json:"created_at"`
}
