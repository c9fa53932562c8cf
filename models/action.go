package models

import "time"

// Action is one entry in a transaction's append-only activity log.
type Action struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID uint      `gorm:"index;not null" json:"transaction_id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	User          User      `json:"user"`
	Description   string    `gorm:"size:255;not null" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}
