package models

import "time"

// Response records a participant's current choice for one question. The
// unique index enforces at most one row per (session, question); a revote
// updates the row in place.
type Response struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionID      uint      `gorm:"not null;uniqueIndex:idx_response_unique" json:"session_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_response_unique;index" json:"question_id"`
	AnswerOptionID uint      `gorm:"not null" json:"answer_option_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
