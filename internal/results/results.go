// Package results computes aggregate views over poll responses. All
// functions are pure projections of their inputs; fetching rows and
// deciding what a caller may see belong to the service layer.
package results

import (
	"errors"
	"sort"
)

var (
	// ErrInsufficientData marks inputs that cannot produce a meaningful
	// chart (no answer options, or no usable responses). Callers check it
	// with errors.Is and render a message instead of a degenerate chart.
	ErrInsufficientData = errors.New("insufficient data to aggregate")

	// ErrDuplicateResponse reports more than one response for the same
	// (session, question) pair, which the store's unique index should make
	// impossible. Aggregation refuses to count duplicates as extra votes.
	ErrDuplicateResponse = errors.New("duplicate response for session and question")
)

// Option is one answer choice as the aggregation core sees it.
type Option struct {
	ID    uint
	Text  string
	Order int
	Color string
}

// Response is one session's current choice for one question.
type Response struct {
	SessionID  uint
	QuestionID uint
	OptionID   uint
}

// OptionCount is one row of a per-question tally.
type OptionCount struct {
	OptionID uint   `json:"option_id"`
	Text     string `json:"option_text"`
	Order    int    `json:"option_order"`
	Color    string `json:"color,omitempty"`
	Count    int    `json:"response_count"`
}

// QuestionTally is the per-question aggregation output. Every option
// appears exactly once, zero-count options included, ordered by option
// order ascending.
type QuestionTally struct {
	Counts []OptionCount `json:"counts"`
	Total  int           `json:"total_responses"`

	// Ignored counts responses that referenced an option outside the
	// supplied set. They are dropped rather than crashing the aggregation;
	// callers log a nonzero value.
	Ignored int `json:"-"`
}

// CountByOption tallies responses per answer option for a single question.
// Responses for other questions are skipped. Two calls on the same input
// yield identical output.
func CountByOption(questionID uint, options []Option, responses []Response) (*QuestionTally, error) {
	if len(options) == 0 {
		return nil, ErrInsufficientData
	}

	ordered := make([]Option, len(options))
	copy(ordered, options)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Order < ordered[b].Order
	})

	index := make(map[uint]int, len(ordered))
	counts := make([]OptionCount, len(ordered))
	for i, opt := range ordered {
		index[opt.ID] = i
		counts[i] = OptionCount{
			OptionID: opt.ID,
			Text:     opt.Text,
			Order:    opt.Order,
			Color:    opt.Color,
		}
	}

	tally := &QuestionTally{Counts: counts}
	seen := make(map[uint]bool)
	for _, r := range responses {
		if r.QuestionID != questionID {
			continue
		}
		if seen[r.SessionID] {
			return nil, ErrDuplicateResponse
		}
		seen[r.SessionID] = true

		i, ok := index[r.OptionID]
		if !ok {
			tally.Ignored++
			continue
		}
		tally.Counts[i].Count++
		tally.Total++
	}

	return tally, nil
}
