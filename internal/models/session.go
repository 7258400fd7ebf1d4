package models

import "time"

// Session is one anonymous participant's visit to one poll. The token is
// persisted client-side so a reload resumes the same session.
type Session struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PollID     uint      `gorm:"not null;index" json:"poll_id"`
	Token      string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `gorm:"index" json:"last_seen_at"`
}
