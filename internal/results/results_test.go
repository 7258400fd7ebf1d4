package results

import (
	"errors"
	"reflect"
	"testing"
)

func TestCountByOption(t *testing.T) {
	options := []Option{
		{ID: 1, Text: "Red", Order: 0},
		{ID: 2, Text: "Blue", Order: 1},
		{ID: 3, Text: "Green", Order: 2},
	}

	tests := []struct {
		name       string
		responses  []Response
		wantCounts []int
		wantTotal  int
	}{
		{
			name:       "no responses yields all zeros",
			responses:  nil,
			wantCounts: []int{0, 0, 0},
			wantTotal:  0,
		},
		{
			name: "zero-count options are never omitted",
			responses: []Response{
				{SessionID: 1, QuestionID: 10, OptionID: 1},
				{SessionID: 2, QuestionID: 10, OptionID: 1},
				{SessionID: 3, QuestionID: 10, OptionID: 1},
				{SessionID: 4, QuestionID: 10, OptionID: 3},
				{SessionID: 5, QuestionID: 10, OptionID: 3},
				{SessionID: 6, QuestionID: 10, OptionID: 3},
				{SessionID: 7, QuestionID: 10, OptionID: 3},
				{SessionID: 8, QuestionID: 10, OptionID: 3},
			},
			wantCounts: []int{3, 0, 5},
			wantTotal:  8,
		},
		{
			name: "responses for other questions are skipped",
			responses: []Response{
				{SessionID: 1, QuestionID: 10, OptionID: 2},
				{SessionID: 1, QuestionID: 99, OptionID: 1},
				{SessionID: 2, QuestionID: 99, OptionID: 1},
			},
			wantCounts: []int{0, 1, 0},
			wantTotal:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally, err := CountByOption(10, options, tt.responses)
			if err != nil {
				t.Fatalf("CountByOption returned error: %v", err)
			}

			if len(tally.Counts) != len(options) {
				t.Fatalf("expected %d count rows, got %d", len(options), len(tally.Counts))
			}
			for i, want := range tt.wantCounts {
				if tally.Counts[i].Count != want {
					t.Errorf("option %q: expected count %d, got %d",
						tally.Counts[i].Text, want, tally.Counts[i].Count)
				}
			}
			if tally.Total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, tally.Total)
			}

			// Every response counted exactly once.
			sum := 0
			for _, c := range tally.Counts {
				sum += c.Count
			}
			if sum != tally.Total {
				t.Errorf("count sum %d does not match total %d", sum, tally.Total)
			}
		})
	}
}

func TestCountByOptionOrdering(t *testing.T) {
	// Supplied out of order; output must follow option order ascending.
	options := []Option{
		{ID: 3, Text: "Green", Order: 2},
		{ID: 1, Text: "Red", Order: 0},
		{ID: 2, Text: "Blue", Order: 1},
	}

	tally, err := CountByOption(10, options, nil)
	if err != nil {
		t.Fatalf("CountByOption returned error: %v", err)
	}

	want := []string{"Red", "Blue", "Green"}
	for i, text := range want {
		if tally.Counts[i].Text != text {
			t.Errorf("position %d: expected %q, got %q", i, text, tally.Counts[i].Text)
		}
	}
}

func TestCountByOptionDeterministic(t *testing.T) {
	options := []Option{
		{ID: 1, Text: "A", Order: 0},
		{ID: 2, Text: "B", Order: 1},
	}
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 2, QuestionID: 10, OptionID: 2},
		{SessionID: 3, QuestionID: 10, OptionID: 2},
	}

	first, err := CountByOption(10, options, responses)
	if err != nil {
		t.Fatalf("first call returned error: %v", err)
	}
	second, err := CountByOption(10, options, responses)
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation on the same input produced different output")
	}
}

func TestCountByOptionUnknownOptionIgnored(t *testing.T) {
	options := []Option{
		{ID: 1, Text: "A", Order: 0},
		{ID: 2, Text: "B", Order: 1},
	}
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 2, QuestionID: 10, OptionID: 777},
	}

	tally, err := CountByOption(10, options, responses)
	if err != nil {
		t.Fatalf("CountByOption returned error: %v", err)
	}
	if tally.Total != 1 {
		t.Errorf("expected total 1, got %d", tally.Total)
	}
	if tally.Ignored != 1 {
		t.Errorf("expected 1 ignored response, got %d", tally.Ignored)
	}
}

func TestCountByOptionDuplicateSession(t *testing.T) {
	options := []Option{
		{ID: 1, Text: "A", Order: 0},
		{ID: 2, Text: "B", Order: 1},
	}
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 10, OptionID: 2},
	}

	_, err := CountByOption(10, options, responses)
	if !errors.Is(err, ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestCountByOptionNoOptions(t *testing.T) {
	_, err := CountByOption(10, nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestCountByOptionRevote(t *testing.T) {
	// After a revote the store holds a single row with the new choice; the
	// superseded option must count zero.
	options := []Option{
		{ID: 1, Text: "A", Order: 0},
		{ID: 2, Text: "B", Order: 1},
	}
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 2},
	}

	tally, err := CountByOption(10, options, responses)
	if err != nil {
		t.Fatalf("CountByOption returned error: %v", err)
	}
	if tally.Counts[0].Count != 0 || tally.Counts[1].Count != 1 {
		t.Errorf("expected counts [0 1], got [%d %d]", tally.Counts[0].Count, tally.Counts[1].Count)
	}
}
