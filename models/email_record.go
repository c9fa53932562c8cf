package models

import (
	"time"

	"gorm.io/datatypes"
)

type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "SENT"
	EmailStatusFailed  EmailStatus = "FAILED"
	EmailStatusSkipped EmailStatus = "SKIPPED"
)

// EmailRecord is an audit row for every notification attempt, sent or not.
type EmailRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	MessageID string         `gorm:"uniqueIndex;size:36" json:"message_id"`
	Template  string         `gorm:"size:40;not null" json:"template"`
	Recipient string         `gorm:"size:180;not null" json:"recipient"`
	Subject   string         `gorm:"size:255" json:"subject"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Status    EmailStatus    `gorm:"size:10;index" json:"status"`
	Error     string         `gorm:"size:500" json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
