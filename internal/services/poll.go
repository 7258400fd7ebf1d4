package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"regexp"
	"time"

	"github.com/dw4085/live-polling-app/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Ambiguous characters (0/o, 1/l, i) are excluded so codes survive being
// read off a projector.
const accessCodeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
const accessCodeLength = 8

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type PollService struct {
	db      *gorm.DB
	results *ResultsService
}

func NewPollService(db *gorm.DB, results *ResultsService) *PollService {
	return &PollService{db: db, results: results}
}

type PollInput struct {
	Title    string
	Slug     string
	Password string
}

func (s *PollService) CreatePoll(adminID uint, input PollInput) (*models.Poll, error) {
	if input.Title == "" || len(input.Title) > 255 {
		return nil, errors.New("title is required and must be 255 characters or less")
	}

	poll := models.Poll{
		AdminID: &adminID,
		Title:   input.Title,
		State:   models.PollStateDraft,
	}

	if input.Slug != "" {
		if !slugPattern.MatchString(input.Slug) || len(input.Slug) > 100 {
			return nil, errors.New("slug can only contain lowercase letters, numbers, and hyphens")
		}
		var count int64
		s.db.Model(&models.Poll{}).Where("slug = ?", input.Slug).Count(&count)
		if count > 0 {
			return nil, errors.New("slug already in use")
		}
		slug := input.Slug
		poll.Slug = &slug
	}

	if input.Password != "" {
		if len(input.Password) < 4 {
			return nil, errors.New("password must be at least 4 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		poll.PasswordHash = string(hash)
	}

	poll.AccessCode = s.generateUniqueAccessCode()

	if err := s.db.Create(&poll).Error; err != nil {
		return nil, err
	}
	return &poll, nil
}

func (s *PollService) GetPoll(pollID, adminID uint, superadmin bool) (*models.Poll, error) {
	var poll models.Poll
	q := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if !superadmin {
		q = q.Where("admin_id = ?", adminID)
	}
	if err := q.First(&poll, pollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	return &poll, nil
}

func (s *PollService) ListPolls(adminID uint, superadmin bool) ([]models.Poll, error) {
	var polls []models.Poll
	q := s.db.Order("created_at DESC")
	if !superadmin {
		q = q.Where("admin_id = ?", adminID)
	}
	if err := q.Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

func (s *PollService) UpdatePoll(pollID, adminID uint, superadmin bool, input PollInput) (*models.Poll, error) {
	poll, err := s.GetPoll(pollID, adminID, superadmin)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		if len(input.Title) > 255 {
			return nil, errors.New("title must be 255 characters or less")
		}
		poll.Title = input.Title
	}

	if input.Password != "" {
		if len(input.Password) < 4 {
			return nil, errors.New("password must be at least 4 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		poll.PasswordHash = string(hash)
	}

	if err := s.db.Save(poll).Error; err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *PollService) DeletePoll(pollID, adminID uint, superadmin bool) error {
	q := s.db.Where("id = ?", pollID)
	if !superadmin {
		q = q.Where("admin_id = ?", adminID)
	}
	result := q.Delete(&models.Poll{})
	if result.RowsAffected == 0 {
		return errors.New("poll not found")
	}
	return result.Error
}

// Transition moves a poll along draft -> open -> closed -> archived.
func (s *PollService) Transition(pollID, adminID uint, superadmin bool, target string) (*models.Poll, error) {
	poll, err := s.GetPoll(pollID, adminID, superadmin)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch target {
	case models.PollStateOpen:
		if poll.State != models.PollStateDraft && poll.State != models.PollStateClosed {
			return nil, errors.New("poll cannot be opened from its current state")
		}
		poll.State = models.PollStateOpen
		poll.OpenedAt = &now
	case models.PollStateClosed:
		if poll.State != models.PollStateOpen {
			return nil, errors.New("only an open poll can be closed")
		}
		poll.State = models.PollStateClosed
		poll.ClosedAt = &now
	case models.PollStateArchived:
		if poll.State != models.PollStateClosed {
			return nil, errors.New("only a closed poll can be archived")
		}
		poll.State = models.PollStateArchived
	default:
		return nil, errors.New("invalid poll state")
	}

	if err := s.db.Save(poll).Error; err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *PollService) SetResultsRevealed(pollID, adminID uint, superadmin, revealed bool) (*models.Poll, error) {
	poll, err := s.GetPoll(pollID, adminID, superadmin)
	if err != nil {
		return nil, err
	}
	poll.ResultsRevealed = revealed
	if err := s.db.Save(poll).Error; err != nil {
		return nil, err
	}
	return poll, nil
}

// ResetResponses archives the current counts as a snapshot, then deletes
// every response for the poll. Snapshot and delete share one transaction so
// a vote landing in between is either counted or kept, never silently lost.
// Sessions survive so participants keep their identity and can revote.
func (s *PollService) ResetResponses(pollID, adminID uint, superadmin bool) error {
	poll, err := s.GetPoll(pollID, adminID, superadmin)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		tallies, err := s.results.Tallies(tx, poll.ID)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(tallies)
		if err != nil {
			return err
		}
		snapshot := models.ResultSnapshot{PollID: poll.ID, Payload: payload}
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}
		return tx.Where("question_id IN (?)",
			tx.Model(&models.Question{}).Select("id").Where("poll_id = ?", poll.ID),
		).Delete(&models.Response{}).Error
	})
}

func (s *PollService) ListSnapshots(pollID, adminID uint, superadmin bool) ([]models.ResultSnapshot, error) {
	if _, err := s.GetPoll(pollID, adminID, superadmin); err != nil {
		return nil, err
	}
	var snapshots []models.ResultSnapshot
	if err := s.db.Where("poll_id = ?", pollID).
		Order("created_at DESC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// FindByID is the unauthenticated lookup used by the participant flow.
func (s *PollService) FindByID(pollID uint) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	return &poll, nil
}

// FindByCode resolves a participant's entry code, accepting either the
// generated access code or the vanity slug.
func (s *PollService) FindByCode(code string) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.Where("access_code = ? OR slug = ?", code, code).
		First(&poll).Error; err != nil {
		return nil, errors.New("poll not found")
	}
	return &poll, nil
}

func (s *PollService) VerifyPassword(poll *models.Poll, password string) bool {
	if !poll.PasswordProtected() {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(poll.PasswordHash), []byte(password)) == nil
}

func (s *PollService) generateUniqueAccessCode() string {
	for {
		code := newAccessCode()
		var count int64
		s.db.Model(&models.Poll{}).Where("access_code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

func newAccessCode() string {
	max := big.NewInt(int64(len(accessCodeAlphabet)))
	code := make([]byte, accessCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(code)
}
