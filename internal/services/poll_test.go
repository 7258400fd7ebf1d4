package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dw4085/live-polling-app/internal/models"
	"github.com/dw4085/live-polling-app/internal/results"
)

func TestNewAccessCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newAccessCode()

		if len(code) != accessCodeLength {
			t.Fatalf("expected code length %d, got %d (%q)", accessCodeLength, len(code), code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(accessCodeAlphabet, ch) {
				t.Fatalf("code %q contains character %q outside the alphabet", code, ch)
			}
		}
		seen[code] = true
	}

	// 31^8 codes; 100 draws colliding would point at a broken generator.
	if len(seen) < 90 {
		t.Errorf("expected mostly unique codes, got %d unique of 100", len(seen))
	}
}

func TestSlugPattern(t *testing.T) {
	tests := []struct {
		slug string
		ok   bool
	}{
		{"physics-101", true},
		{"exam2", true},
		{"a", true},
		{"Physics", false},
		{"has space", false},
		{"under_score", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := slugPattern.MatchString(tt.slug); got != tt.ok {
			t.Errorf("slug %q: expected valid=%v, got %v", tt.slug, tt.ok, got)
		}
	}
}

func TestResetResponsesSnapshotsCurrentCounts(t *testing.T) {
	db := newTestDB(t)
	poll := createOpenPoll(t, db, "Colors", "cccc4444")

	question := models.Question{
		PollID:          poll.ID,
		Text:            "Pick one",
		Position:        0,
		ChartType:       models.ChartTypeHorizontalBar,
		VisibleToVoters: true,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	optA := models.AnswerOption{QuestionID: question.ID, Text: "A", Position: 0}
	optB := models.AnswerOption{QuestionID: question.ID, Text: "B", Position: 1}
	db.Create(&optA)
	db.Create(&optB)

	session := models.Session{PollID: poll.ID, Token: "tok-reset", LastSeenAt: time.Now()}
	db.Create(&session)
	db.Create(&models.Response{SessionID: session.ID, QuestionID: question.ID, AnswerOptionID: optA.ID})

	resultsService := NewResultsService(db)
	pollService := NewPollService(db, resultsService)

	if err := pollService.ResetResponses(poll.ID, *poll.AdminID, false); err != nil {
		t.Fatalf("ResetResponses returned error: %v", err)
	}

	var remaining int64
	db.Model(&models.Response{}).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected all responses deleted, %d remain", remaining)
	}

	var snapshots []models.ResultSnapshot
	db.Where("poll_id = ?", poll.ID).Find(&snapshots)
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snapshots))
	}

	// The snapshot holds the counts the delete wiped out.
	var tallies map[uint]*results.QuestionTally
	if err := json.Unmarshal(snapshots[0].Payload, &tallies); err != nil {
		t.Fatalf("failed to decode snapshot payload: %v", err)
	}
	tally := tallies[question.ID]
	if tally == nil {
		t.Fatalf("snapshot is missing question %d", question.ID)
	}
	if tally.Total != 1 {
		t.Errorf("expected snapshot total 1, got %d", tally.Total)
	}
	if tally.Counts[0].Count != 1 || tally.Counts[1].Count != 0 {
		t.Errorf("expected snapshot counts [1 0], got [%d %d]",
			tally.Counts[0].Count, tally.Counts[1].Count)
	}
}
