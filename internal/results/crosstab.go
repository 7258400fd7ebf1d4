package results

import "sort"

// CrossTab is a two-question contingency table. Matrix is row-major:
// Matrix[i][j] counts sessions that chose RowOptions[i] for the first
// question and ColOptions[j] for the second. Only sessions that answered
// both questions contribute, so TotalRespondents equals the sum over the
// whole matrix and never exceeds either question's own total.
type CrossTab struct {
	RowOptions       []OptionCount `json:"row_options"`
	ColOptions       []OptionCount `json:"col_options"`
	Matrix           [][]int       `json:"matrix"`
	Combinations     []Combination `json:"combinations"`
	TotalRespondents int           `json:"total_respondents"`
}

// Combination is one cell of the matrix flattened for display, labeled
// with both option texts.
type Combination struct {
	RowOptionID uint   `json:"row_option_id"`
	ColOptionID uint   `json:"col_option_id"`
	RowText     string `json:"row_text"`
	ColText     string `json:"col_text"`
	Count       int    `json:"count"`
}

// CrossTabulate builds the contingency table for two distinct questions.
// Responses for other questions are skipped; a response referencing an
// unknown option is dropped, which excludes that session like an
// unanswered question would. Combinations are generated row-major and then
// stably sorted by count descending, so ties keep generation order.
func CrossTabulate(q1ID uint, q1Options []Option, q2ID uint, q2Options []Option, responses []Response) (*CrossTab, error) {
	if len(q1Options) == 0 || len(q2Options) == 0 {
		return nil, ErrInsufficientData
	}

	rows := orderedCounts(q1Options)
	cols := orderedCounts(q2Options)

	rowIndex := make(map[uint]int, len(rows))
	for i, o := range rows {
		rowIndex[o.OptionID] = i
	}
	colIndex := make(map[uint]int, len(cols))
	for j, o := range cols {
		colIndex[o.OptionID] = j
	}

	// Per session: the chosen option for each question, if any. seenQ1/seenQ2
	// track rows, hasQ1/hasQ2 track valid choices; a duplicate row is a
	// duplicate even when its option is unknown.
	type pair struct {
		q1, q2         uint
		hasQ1, hasQ2   bool
		seenQ1, seenQ2 bool
	}
	bySession := make(map[uint]*pair)
	order := make([]uint, 0)
	for _, r := range responses {
		if r.QuestionID != q1ID && r.QuestionID != q2ID {
			continue
		}
		p := bySession[r.SessionID]
		if p == nil {
			p = &pair{}
			bySession[r.SessionID] = p
			order = append(order, r.SessionID)
		}
		if r.QuestionID == q1ID {
			if p.seenQ1 {
				return nil, ErrDuplicateResponse
			}
			p.seenQ1 = true
			if _, ok := rowIndex[r.OptionID]; ok {
				p.q1 = r.OptionID
				p.hasQ1 = true
			}
		} else {
			if p.seenQ2 {
				return nil, ErrDuplicateResponse
			}
			p.seenQ2 = true
			if _, ok := colIndex[r.OptionID]; ok {
				p.q2 = r.OptionID
				p.hasQ2 = true
			}
		}
	}

	matrix := make([][]int, len(rows))
	for i := range matrix {
		matrix[i] = make([]int, len(cols))
	}

	total := 0
	for _, sid := range order {
		p := bySession[sid]
		if !p.hasQ1 || !p.hasQ2 {
			continue
		}
		i := rowIndex[p.q1]
		j := colIndex[p.q2]
		matrix[i][j]++
		rows[i].Count++
		cols[j].Count++
		total++
	}

	if total == 0 {
		return nil, ErrInsufficientData
	}

	combos := make([]Combination, 0, len(rows)*len(cols))
	for i, ro := range rows {
		for j, co := range cols {
			combos = append(combos, Combination{
				RowOptionID: ro.OptionID,
				ColOptionID: co.OptionID,
				RowText:     ro.Text,
				ColText:     co.Text,
				Count:       matrix[i][j],
			})
		}
	}
	sort.SliceStable(combos, func(a, b int) bool {
		return combos[a].Count > combos[b].Count
	})

	return &CrossTab{
		RowOptions:       rows,
		ColOptions:       cols,
		Matrix:           matrix,
		Combinations:     combos,
		TotalRespondents: total,
	}, nil
}

func orderedCounts(options []Option) []OptionCount {
	ordered := make([]Option, len(options))
	copy(ordered, options)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Order < ordered[b].Order
	})

	counts := make([]OptionCount, len(ordered))
	for i, opt := range ordered {
		counts[i] = OptionCount{
			OptionID: opt.ID,
			Text:     opt.Text,
			Order:    opt.Order,
			Color:    opt.Color,
		}
	}
	return counts
}
