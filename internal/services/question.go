package services

import (
	"errors"

	"github.com/dw4085/live-polling-app/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type OptionInput struct {
	Text  string `json:"text" binding:"required,max=500"`
	Color string `json:"color"`
}

type QuestionInput struct {
	Text            string
	ChartType       string
	VisibleToVoters *bool
	Options         []OptionInput
}

func (s *QuestionService) CreateQuestion(pollID, adminID uint, superadmin bool, input QuestionInput) (*models.Question, error) {
	if _, err := s.ownedPoll(pollID, adminID, superadmin); err != nil {
		return nil, err
	}

	if input.Text == "" {
		return nil, errors.New("question text is required")
	}
	if len(input.Options) < 2 {
		return nil, errors.New("at least 2 answer options are required")
	}

	chartType := input.ChartType
	if chartType == "" {
		chartType = models.ChartTypeHorizontalBar
	}
	if !models.ValidChartType(chartType) {
		return nil, errors.New("invalid chart type")
	}

	var maxPos int
	s.db.Model(&models.Question{}).Where("poll_id = ?", pollID).
		Select("COALESCE(MAX(position), -1)").Scan(&maxPos)

	question := models.Question{
		PollID:          pollID,
		Text:            input.Text,
		Position:        maxPos + 1,
		ChartType:       chartType,
		VisibleToVoters: true,
	}
	if input.VisibleToVoters != nil {
		question.VisibleToVoters = *input.VisibleToVoters
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for i, opt := range input.Options {
			o := models.AnswerOption{
				QuestionID: question.ID,
				Text:       opt.Text,
				Position:   i,
				Color:      opt.Color,
			}
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
			question.Options = append(question.Options, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) UpdateQuestion(questionID, adminID uint, superadmin bool, input QuestionInput) (*models.Question, error) {
	question, err := s.ownedQuestion(questionID, adminID, superadmin)
	if err != nil {
		return nil, err
	}

	if input.Text != "" {
		question.Text = input.Text
	}
	if input.ChartType != "" {
		if !models.ValidChartType(input.ChartType) {
			return nil, errors.New("invalid chart type")
		}
		question.ChartType = input.ChartType
	}
	if input.VisibleToVoters != nil {
		question.VisibleToVoters = *input.VisibleToVoters
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(question).Error; err != nil {
			return err
		}
		if input.Options == nil {
			return nil
		}
		// Replacing the option set invalidates prior responses to this
		// question; they cascade away with the old options' rows.
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.AnswerOption{}).Error; err != nil {
			return err
		}
		question.Options = nil
		for i, opt := range input.Options {
			o := models.AnswerOption{
				QuestionID: question.ID,
				Text:       opt.Text,
				Position:   i,
				Color:      opt.Color,
			}
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
			question.Options = append(question.Options, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(questionID, adminID uint, superadmin bool) (*models.Question, error) {
	question, err := s.ownedQuestion(questionID, adminID, superadmin)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.AnswerOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, question.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) SetVisibility(questionID, adminID uint, superadmin, visible bool) (*models.Question, error) {
	question, err := s.ownedQuestion(questionID, adminID, superadmin)
	if err != nil {
		return nil, err
	}
	question.VisibleToVoters = visible
	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) SetResultsRevealed(questionID, adminID uint, superadmin, revealed bool) (*models.Question, error) {
	question, err := s.ownedQuestion(questionID, adminID, superadmin)
	if err != nil {
		return nil, err
	}
	question.ResultsRevealed = revealed
	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

// Reorder assigns positions following the given id order. Every question
// of the poll must appear exactly once.
func (s *QuestionService) Reorder(pollID, adminID uint, superadmin bool, questionIDs []uint) error {
	if _, err := s.ownedPoll(pollID, adminID, superadmin); err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Question{}).Where("poll_id = ?", pollID).Count(&count)
	if int(count) != len(questionIDs) {
		return errors.New("reorder must include every question exactly once")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Park positions out of range first so the unique (poll, position)
		// index is never violated mid-shuffle.
		if err := tx.Model(&models.Question{}).Where("poll_id = ?", pollID).
			Update("position", gorm.Expr("position + ?", len(questionIDs))).Error; err != nil {
			return err
		}
		for i, id := range questionIDs {
			result := tx.Model(&models.Question{}).
				Where("id = ? AND poll_id = ?", id, pollID).
				Update("position", i)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("question does not belong to poll")
			}
		}
		return nil
	})
}

// VisibleQuestions returns the voter-facing question list in position order.
func (s *QuestionService) VisibleQuestions(pollID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("poll_id = ? AND visible_to_voters = ?", pollID, true).
		Order("position ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) ownedPoll(pollID, adminID uint, superadmin bool) (*models.Poll, error) {
	var poll models.Poll
	q := s.db.Where("id = ?", pollID)
	if !superadmin {
		q = q.Where("admin_id = ?", adminID)
	}
	if err := q.First(&poll).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	return &poll, nil
}

func (s *QuestionService) ownedQuestion(questionID, adminID uint, superadmin bool) (*models.Question, error) {
	var question models.Question
	if err := s.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&question, questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}
	if _, err := s.ownedPoll(question.PollID, adminID, superadmin); err != nil {
		return nil, errors.New("access denied")
	}
	return &question, nil
}
