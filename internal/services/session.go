package services

import (
	"errors"
	"time"

	"github.com/dw4085/live-polling-app/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService struct {
	db           *gorm.DB
	activeWindow time.Duration
}

func NewSessionService(db *gorm.DB, activeWindow time.Duration) *SessionService {
	return &SessionService{db: db, activeWindow: activeWindow}
}

type SessionJoinResult struct {
	Session  models.Session `json:"session"`
	IsRejoin bool           `json:"is_rejoin"`
}

// GetOrCreate resumes the session matching the client's token or lazily
// creates one. An empty token gets a server-minted one.
func (s *SessionService) GetOrCreate(pollID uint, token string) (*SessionJoinResult, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	if poll.State != models.PollStateOpen {
		return nil, errors.New("poll is not accepting participants")
	}

	if token != "" {
		var existing models.Session
		if err := s.db.Where("token = ?", token).First(&existing).Error; err == nil {
			if existing.PollID == pollID {
				s.Touch(&existing)
				return &SessionJoinResult{Session: existing, IsRejoin: true}, nil
			}
			// The token already identifies a session in another poll; tokens
			// are globally unique, so this poll gets a fresh one.
			token = uuid.NewString()
		}
	} else {
		token = uuid.NewString()
	}

	session := models.Session{
		PollID:     pollID,
		Token:      token,
		LastSeenAt: time.Now(),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &SessionJoinResult{Session: session}, nil
}

func (s *SessionService) GetByToken(token string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Where("token = ?", token).First(&session).Error; err != nil {
		return nil, errors.New("session not found")
	}
	return &session, nil
}

// Touch records activity for the trailing-window participant estimate.
func (s *SessionService) Touch(session *models.Session) {
	session.LastSeenAt = time.Now()
	s.db.Model(session).Update("last_seen_at", session.LastSeenAt)
}

// ActiveCount estimates how many participants are currently present: the
// sessions seen within the trailing window.
func (s *SessionService) ActiveCount(pollID uint) (int, error) {
	cutoff := time.Now().Add(-s.activeWindow)
	var count int64
	if err := s.db.Model(&models.Session{}).
		Where("poll_id = ? AND last_seen_at > ?", pollID, cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
