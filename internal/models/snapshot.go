package models

import "time"

// ResultSnapshot archives a poll's aggregate counts before a response reset
// wipes the underlying rows.
type ResultSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"not null;index" json:"poll_id"`
	Payload   []byte    `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
