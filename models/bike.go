package models

import "time"

type Bike struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Make        string    `gorm:"size:120" json:"make"`
	Model       string    `gorm:"size:120" json:"model"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
