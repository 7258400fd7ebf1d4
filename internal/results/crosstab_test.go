package results

import (
	"errors"
	"testing"
)

var (
	q1Options = []Option{
		{ID: 1, Text: "A", Order: 0},
		{ID: 2, Text: "B", Order: 1},
	}
	q2Options = []Option{
		{ID: 11, Text: "X", Order: 0},
		{ID: 12, Text: "Y", Order: 1},
	}
)

func TestCrossTabulate(t *testing.T) {
	// s1->(A,X), s2->(A,Y), s3->(B,X), s4 answered only the first question.
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
		{SessionID: 2, QuestionID: 10, OptionID: 1},
		{SessionID: 2, QuestionID: 20, OptionID: 12},
		{SessionID: 3, QuestionID: 10, OptionID: 2},
		{SessionID: 3, QuestionID: 20, OptionID: 11},
		{SessionID: 4, QuestionID: 10, OptionID: 1},
	}

	ct, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if err != nil {
		t.Fatalf("CrossTabulate returned error: %v", err)
	}

	if ct.TotalRespondents != 3 {
		t.Errorf("expected 3 respondents (partial answers excluded), got %d", ct.TotalRespondents)
	}

	wantMatrix := [][]int{
		{1, 1}, // A x X, A x Y
		{1, 0}, // B x X, B x Y
	}
	for i, row := range wantMatrix {
		for j, want := range row {
			if ct.Matrix[i][j] != want {
				t.Errorf("matrix[%d][%d]: expected %d, got %d", i, j, want, ct.Matrix[i][j])
			}
		}
	}

	// Matrix sum equals total respondents.
	sum := 0
	for _, row := range ct.Matrix {
		for _, n := range row {
			sum += n
		}
	}
	if sum != ct.TotalRespondents {
		t.Errorf("matrix sum %d does not equal total respondents %d", sum, ct.TotalRespondents)
	}

	// Combinations sorted by count descending; the three 1-count pairs keep
	// generation order (A,X), (A,Y), (B,X), and (B,Y):0 comes last.
	wantCombos := []struct {
		row, col string
		count    int
	}{
		{"A", "X", 1},
		{"A", "Y", 1},
		{"B", "X", 1},
		{"B", "Y", 0},
	}
	if len(ct.Combinations) != len(wantCombos) {
		t.Fatalf("expected %d combinations, got %d", len(wantCombos), len(ct.Combinations))
	}
	for i, want := range wantCombos {
		got := ct.Combinations[i]
		if got.RowText != want.row || got.ColText != want.col || got.Count != want.count {
			t.Errorf("combination %d: expected %sx%s=%d, got %sx%s=%d",
				i, want.row, want.col, want.count, got.RowText, got.ColText, got.Count)
		}
	}
}

func TestCrossTabulateRespondentsBoundedBySingleQuestionTotals(t *testing.T) {
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
		{SessionID: 2, QuestionID: 10, OptionID: 2},
		{SessionID: 3, QuestionID: 20, OptionID: 12},
		{SessionID: 4, QuestionID: 10, OptionID: 1},
	}

	ct, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if err != nil {
		t.Fatalf("CrossTabulate returned error: %v", err)
	}

	q1Tally, err := CountByOption(10, q1Options, responses)
	if err != nil {
		t.Fatalf("CountByOption(q1) returned error: %v", err)
	}
	q2Tally, err := CountByOption(20, q2Options, responses)
	if err != nil {
		t.Fatalf("CountByOption(q2) returned error: %v", err)
	}

	if ct.TotalRespondents > q1Tally.Total || ct.TotalRespondents > q2Tally.Total {
		t.Errorf("cross-tab respondents %d exceeds single-question totals (%d, %d)",
			ct.TotalRespondents, q1Tally.Total, q2Tally.Total)
	}
}

func TestCrossTabulateInsufficientData(t *testing.T) {
	tests := []struct {
		name      string
		q1Opts    []Option
		q2Opts    []Option
		responses []Response
	}{
		{
			name:   "no options on first question",
			q1Opts: nil,
			q2Opts: q2Options,
		},
		{
			name:   "no options on second question",
			q1Opts: q1Options,
			q2Opts: nil,
		},
		{
			name:   "no responses at all",
			q1Opts: q1Options,
			q2Opts: q2Options,
		},
		{
			name:   "nobody answered both questions",
			q1Opts: q1Options,
			q2Opts: q2Options,
			responses: []Response{
				{SessionID: 1, QuestionID: 10, OptionID: 1},
				{SessionID: 2, QuestionID: 20, OptionID: 11},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CrossTabulate(10, tt.q1Opts, 20, tt.q2Opts, tt.responses)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestCrossTabulateDuplicateResponse(t *testing.T) {
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 10, OptionID: 2},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
	}

	_, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if !errors.Is(err, ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestCrossTabulateDuplicateAfterUnknownOption(t *testing.T) {
	// The first row references an option outside the set; the second row for
	// the same (session, question) is still a duplicate.
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 99},
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
	}

	_, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if !errors.Is(err, ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
}

func TestCrossTabulateRowAndColumnMarginals(t *testing.T) {
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
		{SessionID: 2, QuestionID: 10, OptionID: 1},
		{SessionID: 2, QuestionID: 20, OptionID: 11},
		{SessionID: 3, QuestionID: 10, OptionID: 2},
		{SessionID: 3, QuestionID: 20, OptionID: 12},
	}

	ct, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if err != nil {
		t.Fatalf("CrossTabulate returned error: %v", err)
	}

	for i, row := range ct.RowOptions {
		sum := 0
		for j := range ct.ColOptions {
			sum += ct.Matrix[i][j]
		}
		if row.Count != sum {
			t.Errorf("row %q marginal %d does not match matrix row sum %d", row.Text, row.Count, sum)
		}
	}
	for j, col := range ct.ColOptions {
		sum := 0
		for i := range ct.RowOptions {
			sum += ct.Matrix[i][j]
		}
		if col.Count != sum {
			t.Errorf("column %q marginal %d does not match matrix column sum %d", col.Text, col.Count, sum)
		}
	}
}

func TestCrossTabulateIgnoresOtherQuestions(t *testing.T) {
	responses := []Response{
		{SessionID: 1, QuestionID: 10, OptionID: 1},
		{SessionID: 1, QuestionID: 20, OptionID: 11},
		{SessionID: 1, QuestionID: 30, OptionID: 99},
	}

	ct, err := CrossTabulate(10, q1Options, 20, q2Options, responses)
	if err != nil {
		t.Fatalf("CrossTabulate returned error: %v", err)
	}
	if ct.TotalRespondents != 1 {
		t.Errorf("expected 1 respondent, got %d", ct.TotalRespondents)
	}
}
