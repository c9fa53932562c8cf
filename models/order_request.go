package models

import "time"

const OrderRequestStatusNotOrdered = "Not Ordered"

// OrderRequest is a customer or shop request for an item that has to be
// ordered from a supplier. It starts as a free-text need, may be tied to an
// item and one or more transactions, and once placed on an Order its status
// mirrors the order's.
type OrderRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Request  string `gorm:"size:500" json:"request"`
	ItemID   *uint  `gorm:"index" json:"item_id"`
	Item     *Item  `json:"item"`
	Quantity int    `json:"quantity"`
	Status   string `gorm:"size:20;default:'Not Ordered'" json:"status"`
	Supplier string `gorm:"size:180" json:"supplier"`
	Notes    string `gorm:"size:500" json:"notes"`

	OrderID *uint  `gorm:"index" json:"order_id"`
	Order   *Order `json:"-"`

	Transactions []Transaction `gorm:"many2many:transaction_order_requests" json:"transactions,omitempty"`

	DateCreated time.Time `json:"date_created"`
	UpdatedAt   time.Time `json:"updated_at"`
}
