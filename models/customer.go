package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:120;not null" json:"first_name"`
	LastName  string    `gorm:"size:120;not null" json:"last_name"`
	Email     string    `gorm:"size:180;index;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
