package models

type AnswerOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_option_position" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	Position   int    `gorm:"not null;uniqueIndex:idx_option_position" json:"position"`
	Color      string `gorm:"size:7;default:''" json:"color,omitempty"`
}
