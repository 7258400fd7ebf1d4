package services

import (
	"errors"
	"time"

	"github.com/dw4085/live-polling-app/internal/models"

	"gorm.io/gorm"
)

type ResponseService struct {
	db       *gorm.DB
	sessions *SessionService
}

func NewResponseService(db *gorm.DB, sessions *SessionService) *ResponseService {
	return &ResponseService{db: db, sessions: sessions}
}

// Submit records or overwrites one session's choice for a question. The
// validation chain mirrors the voting contract: session exists, poll is
// open, question belongs to the poll, option belongs to the question.
// A revote updates the existing row; the unique index on
// (session_id, question_id) backstops against duplicates.
func (s *ResponseService) Submit(sessionToken string, questionID, answerOptionID uint) (*models.Response, error) {
	session, err := s.sessions.GetByToken(sessionToken)
	if err != nil {
		return nil, err
	}

	var poll models.Poll
	if err := s.db.First(&poll, session.PollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	if poll.State != models.PollStateOpen {
		return nil, errors.New("poll is not accepting responses")
	}

	var question models.Question
	if err := s.db.Where("id = ? AND poll_id = ?", questionID, poll.ID).
		First(&question).Error; err != nil {
		return nil, errors.New("question not found")
	}
	if !question.VisibleToVoters {
		return nil, errors.New("question is not open for voting")
	}

	var option models.AnswerOption
	if err := s.db.Where("id = ? AND question_id = ?", answerOptionID, questionID).
		First(&option).Error; err != nil {
		return nil, errors.New("answer option not found")
	}

	s.sessions.Touch(session)

	var existing models.Response
	if err := s.db.Where("session_id = ? AND question_id = ?", session.ID, questionID).
		First(&existing).Error; err == nil {
		existing.AnswerOptionID = answerOptionID
		existing.UpdatedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	response := models.Response{
		SessionID:      session.ID,
		QuestionID:     questionID,
		AnswerOptionID: answerOptionID,
	}
	if err := s.db.Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// Mine returns the session's current choices for a poll, keyed by question,
// so a reloading client can restore its selections.
func (s *ResponseService) Mine(sessionToken string, pollID uint) (map[uint]uint, error) {
	session, err := s.sessions.GetByToken(sessionToken)
	if err != nil {
		return nil, err
	}
	if session.PollID != pollID {
		return nil, errors.New("session does not belong to poll")
	}

	var responses []models.Response
	if err := s.db.Where("session_id = ?", session.ID).Find(&responses).Error; err != nil {
		return nil, err
	}

	choices := make(map[uint]uint, len(responses))
	for _, r := range responses {
		choices[r.QuestionID] = r.AnswerOptionID
	}
	return choices, nil
}
