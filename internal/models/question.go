package models

type Question struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PollID          uint           `gorm:"not null;uniqueIndex:idx_question_position" json:"poll_id"`
	Text            string         `gorm:"type:text;not null" json:"text"`
	Position        int            `gorm:"not null;uniqueIndex:idx_question_position" json:"position"`
	ChartType       string         `gorm:"size:20;not null;default:'horizontal_bar'" json:"chart_type"`
	VisibleToVoters bool           `gorm:"not null;default:true" json:"visible_to_voters"`
	ResultsRevealed bool           `gorm:"not null;default:false" json:"results_revealed"`
	Options         []AnswerOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

const (
	ChartTypeHorizontalBar = "horizontal_bar"
	ChartTypeVerticalBar   = "vertical_bar"
	ChartTypePie           = "pie"
	ChartTypeDonut         = "donut"
)

func ValidChartType(t string) bool {
	switch t {
	case ChartTypeHorizontalBar, ChartTypeVerticalBar, ChartTypePie, ChartTypeDonut:
		return true
	}
	return false
}
