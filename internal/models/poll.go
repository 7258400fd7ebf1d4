package models

import "time"

type Poll struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AdminID         *uint      `gorm:"index" json:"admin_id,omitempty"`
	Admin           *Admin     `gorm:"foreignKey:AdminID" json:"-"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Slug            *string    `gorm:"size:100;uniqueIndex" json:"slug,omitempty"`
	AccessCode      string     `gorm:"size:16;uniqueIndex;not null" json:"access_code"`
	State           string     `gorm:"size:16;not null;default:'draft'" json:"state"`
	ResultsRevealed bool       `gorm:"not null;default:false" json:"results_revealed"`
	PasswordHash    string     `gorm:"size:255" json:"-"`
	Questions       []Question `gorm:"foreignKey:PollID" json:"questions,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	OpenedAt        *time.Time `json:"opened_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

const (
	PollStateDraft    = "draft"
	PollStateOpen     = "open"
	PollStateClosed   = "closed"
	PollStateArchived = "archived"
)

func (p *Poll) PasswordProtected() bool {
	return p.PasswordHash != ""
}
