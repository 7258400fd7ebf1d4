package services

import (
	"errors"
	"log"

	"github.com/dw4085/live-polling-app/internal/models"
	"github.com/dw4085/live-polling-app/internal/results"

	"gorm.io/gorm"
)

type ResultsService struct {
	db *gorm.DB
}

func NewResultsService(db *gorm.DB) *ResultsService {
	return &ResultsService{db: db}
}

// QuestionResult pairs a question with its tally. Counts are nil when the
// question's results are still hidden from the requester.
type QuestionResult struct {
	QuestionID uint                  `json:"question_id"`
	Text       string                `json:"text"`
	Position   int                   `json:"position"`
	ChartType  string                `json:"chart_type"`
	Revealed   bool                  `json:"revealed"`
	Counts     []results.OptionCount `json:"counts,omitempty"`
	Total      int                   `json:"total_responses"`

	// InsufficientData is set when the question has no answer options;
	// clients show a message instead of an empty chart.
	InsufficientData bool `json:"insufficient_data,omitempty"`
}

// PollResults aggregates every visible question of a poll. Admin requesters
// see all counts; participants only see questions unlocked by the poll-wide
// or per-question reveal flag.
func (s *ResultsService) PollResults(pollID uint, adminView bool) ([]QuestionResult, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}

	var questions []models.Question
	if err := s.db.Where("poll_id = ?", pollID).
		Order("position ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&questions).Error; err != nil {
		return nil, err
	}

	out := make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		if !adminView && !q.VisibleToVoters {
			continue
		}
		qr := QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Position:   q.Position,
			ChartType:  q.ChartType,
			Revealed:   adminView || poll.ResultsRevealed || q.ResultsRevealed,
		}
		if qr.Revealed {
			tally, err := s.tallyQuestion(s.db, q)
			switch {
			case errors.Is(err, results.ErrInsufficientData):
				qr.InsufficientData = true
			case err != nil:
				return nil, err
			default:
				qr.Counts = tally.Counts
				qr.Total = tally.Total
			}
		}
		out = append(out, qr)
	}
	return out, nil
}

// CrossTab builds the two-question contingency view. Both questions must
// belong to the poll, be distinct, and be revealed to the requester.
func (s *ResultsService) CrossTab(pollID, q1ID, q2ID uint, adminView bool) (*results.CrossTab, error) {
	if q1ID == q2ID {
		return nil, errors.New("cross-tabulation requires two distinct questions")
	}

	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}

	q1, err := s.pollQuestion(pollID, q1ID)
	if err != nil {
		return nil, err
	}
	q2, err := s.pollQuestion(pollID, q2ID)
	if err != nil {
		return nil, err
	}

	if !adminView {
		for _, q := range []*models.Question{q1, q2} {
			if !poll.ResultsRevealed && !q.ResultsRevealed {
				return nil, errors.New("results are not revealed for this question")
			}
		}
	}

	responses, err := s.fetchResponses(s.db, q1ID, q2ID)
	if err != nil {
		return nil, err
	}

	crosstab, err := results.CrossTabulate(q1.ID, toOptions(q1.Options), q2.ID, toOptions(q2.Options), responses)
	if err != nil {
		if errors.Is(err, results.ErrDuplicateResponse) {
			log.Printf("results: integrity violation cross-tabulating questions %d x %d: %v", q1ID, q2ID, err)
		}
		return nil, err
	}
	return crosstab, nil
}

// Tallies computes every question's tally, keyed by question id. It runs on
// the supplied handle so a snapshot inside a transaction sees the same rows
// the transaction is about to delete.
func (s *ResultsService) Tallies(db *gorm.DB, pollID uint) (map[uint]*results.QuestionTally, error) {
	var questions []models.Question
	if err := db.Where("poll_id = ?", pollID).
		Preload("Options").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	tallies := make(map[uint]*results.QuestionTally, len(questions))
	for _, q := range questions {
		tally, err := s.tallyQuestion(db, q)
		if err != nil {
			if errors.Is(err, results.ErrInsufficientData) {
				continue
			}
			return nil, err
		}
		tallies[q.ID] = tally
	}
	return tallies, nil
}

func (s *ResultsService) tallyQuestion(db *gorm.DB, q models.Question) (*results.QuestionTally, error) {
	responses, err := s.fetchResponses(db, q.ID)
	if err != nil {
		return nil, err
	}

	tally, err := results.CountByOption(q.ID, toOptions(q.Options), responses)
	if err != nil {
		if errors.Is(err, results.ErrDuplicateResponse) {
			log.Printf("results: integrity violation aggregating question %d: %v", q.ID, err)
		}
		return nil, err
	}
	if tally.Ignored > 0 {
		log.Printf("results: question %d: ignored %d responses referencing unknown options", q.ID, tally.Ignored)
	}
	return tally, nil
}

func (s *ResultsService) fetchResponses(db *gorm.DB, questionIDs ...uint) ([]results.Response, error) {
	var rows []models.Response
	if err := db.Where("question_id IN ?", questionIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]results.Response, len(rows))
	for i, r := range rows {
		out[i] = results.Response{
			SessionID:  r.SessionID,
			QuestionID: r.QuestionID,
			OptionID:   r.AnswerOptionID,
		}
	}
	return out, nil
}

func (s *ResultsService) pollQuestion(pollID, questionID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.Where("id = ? AND poll_id = ?", questionID, pollID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&question).Error; err != nil {
		return nil, errors.New("question not found")
	}
	return &question, nil
}

func toOptions(opts []models.AnswerOption) []results.Option {
	out := make([]results.Option, len(opts))
	for i, o := range opts {
		out[i] = results.Option{ID: o.ID, Text: o.Text, Order: o.Position, Color: o.Color}
	}
	return out
}
