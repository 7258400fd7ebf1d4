package services

import (
	"testing"
	"time"

	"github.com/dw4085/live-polling-app/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Poll{},
		&models.Question{},
		&models.AnswerOption{},
		&models.Session{},
		&models.Response{},
		&models.ResultSnapshot{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createOpenPoll(t *testing.T, db *gorm.DB, title, accessCode string) *models.Poll {
	t.Helper()

	adminID := uint(1)
	poll := models.Poll{
		AdminID:    &adminID,
		Title:      title,
		AccessCode: accessCode,
		State:      models.PollStateOpen,
	}
	if err := db.Create(&poll).Error; err != nil {
		t.Fatalf("failed to create poll: %v", err)
	}
	return &poll
}

func TestGetOrCreateMintsToken(t *testing.T) {
	db := newTestDB(t)
	poll := createOpenPoll(t, db, "Colors", "aaaa2222")
	svc := NewSessionService(db, 30*time.Minute)

	result, err := svc.GetOrCreate(poll.ID, "")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if result.IsRejoin {
		t.Error("expected a fresh session, got a rejoin")
	}
	if result.Session.Token == "" {
		t.Error("expected a server-minted token")
	}
}

func TestGetOrCreateResumesByToken(t *testing.T) {
	db := newTestDB(t)
	poll := createOpenPoll(t, db, "Colors", "aaaa2222")
	svc := NewSessionService(db, 30*time.Minute)

	first, err := svc.GetOrCreate(poll.ID, "")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}

	second, err := svc.GetOrCreate(poll.ID, first.Session.Token)
	if err != nil {
		t.Fatalf("GetOrCreate with token returned error: %v", err)
	}
	if !second.IsRejoin {
		t.Error("expected the existing session to resume")
	}
	if second.Session.ID != first.Session.ID {
		t.Errorf("expected session %d, got %d", first.Session.ID, second.Session.ID)
	}
}

func TestGetOrCreateTokenReusedAcrossPolls(t *testing.T) {
	db := newTestDB(t)
	pollA := createOpenPoll(t, db, "Colors", "aaaa2222")
	pollB := createOpenPoll(t, db, "Seasons", "bbbb3333")
	svc := NewSessionService(db, 30*time.Minute)

	first, err := svc.GetOrCreate(pollA.ID, "")
	if err != nil {
		t.Fatalf("GetOrCreate in first poll returned error: %v", err)
	}

	// A client that persisted its token in one poll then joins another must
	// get a new session there, not a unique-token failure.
	second, err := svc.GetOrCreate(pollB.ID, first.Session.Token)
	if err != nil {
		t.Fatalf("GetOrCreate in second poll returned error: %v", err)
	}
	if second.IsRejoin {
		t.Error("expected a fresh session in the second poll")
	}
	if second.Session.PollID != pollB.ID {
		t.Errorf("expected session in poll %d, got poll %d", pollB.ID, second.Session.PollID)
	}
	if second.Session.Token == first.Session.Token {
		t.Error("expected a fresh token for the second poll's session")
	}

	// The original session still resumes.
	again, err := svc.GetOrCreate(pollA.ID, first.Session.Token)
	if err != nil {
		t.Fatalf("resuming first poll returned error: %v", err)
	}
	if !again.IsRejoin || again.Session.ID != first.Session.ID {
		t.Error("expected the first poll's session to resume unchanged")
	}
}

func TestGetOrCreateRejectsClosedPoll(t *testing.T) {
	db := newTestDB(t)
	poll := createOpenPoll(t, db, "Colors", "aaaa2222")
	db.Model(poll).Update("state", models.PollStateClosed)
	svc := NewSessionService(db, 30*time.Minute)

	if _, err := svc.GetOrCreate(poll.ID, ""); err == nil {
		t.Fatal("expected joining a closed poll to fail")
	}
}
