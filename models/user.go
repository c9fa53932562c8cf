package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:120;not null" json:"username"`
	FirstName    string    `gorm:"size:120" json:"first_name"`
	LastName     string    `gorm:"size:120" json:"last_name"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Admin        bool      `gorm:"default:false" json:"admin"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
