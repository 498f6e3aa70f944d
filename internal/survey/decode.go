package survey

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// NPS banding thresholds, presentational only, never stored.
const (
	BandPromoter  = "Promoter"
	BandNeutral   = "Neutral"
	BandDetractor = "Detractor"
)

// NPSBand classifies a 0-10 score: 9 and above are promoters, 7 and
// above neutrals, everything else detractors.
func NPSBand(value int) string {
	switch {
	case value >= 9:
		return BandPromoter
	case value >= 7:
		return BandNeutral
	default:
		return BandDetractor
	}
}

const placeholderDash = "—"

type DisplayKind string

const (
	DisplayEmpty      DisplayKind = "empty"
	DisplayText       DisplayKind = "text"
	DisplayScore      DisplayKind = "score"
	DisplayChoice     DisplayKind = "choice"
	DisplaySelections DisplayKind = "selections"
	DisplayMatrix     DisplayKind = "matrix"
)

// MatrixCell is one decoded matrix selection.
type MatrixCell struct {
	RowIndex    int    `json:"row_index"`
	ColumnIndex int    `json:"column_index"`
	Row         string `json:"row"`
	Column      string `json:"column"`
}

// Display is the human-readable rendering of one persisted response row,
// the structural inverse of Encode plus label resolution. Only the
// fields relevant to Kind are populated.
type Display struct {
	Kind   DisplayKind  `json:"kind"`
	Text   string       `json:"text,omitempty"`
	Value  int          `json:"value,omitempty"`
	Max    int          `json:"max,omitempty"`
	Label  string       `json:"label,omitempty"`
	Labels []string     `json:"labels,omitempty"`
	Cells  []MatrixCell `json:"cells,omitempty"`
	Band   string       `json:"band,omitempty"`
}

// Decode maps a persisted row back into display form using the
// originating question's type and configuration. It mirrors Encode's
// column selection in reverse and degrades gracefully: an all-null row
// renders as a placeholder dash, and indices that fall outside the
// current configuration (the config may have been edited after
// collection) resolve to blank labels instead of failing.
func Decode(row EncodedResponse, q Question) Display {
	if row.Empty() {
		return Display{Kind: DisplayEmpty}
	}
	switch s := Resolve(q.Type, q.Config).(type) {
	case NPSSettings:
		if row.Value == nil {
			return Display{Kind: DisplayEmpty}
		}
		v := *row.Value
		return Display{Kind: DisplayScore, Value: v, Max: 10, Band: NPSBand(v)}
	case CSATSettings:
		return scoreDisplay(row, s.Scale, s.Labels)
	case CESSettings:
		return scoreDisplay(row, s.Scale, nil)
	case RatingSettings:
		return scoreDisplay(row, s.Max, nil)
	case EmojiSettings:
		return scoreDisplay(row, len(s.Glyphs), s.Glyphs)
	case LikertSettings:
		return scoreDisplay(row, s.Scale, s.Labels)
	case LikeDislikeSettings:
		if row.Value == nil {
			return Display{Kind: DisplayEmpty}
		}
		// 0 is the dislike answer, not an absent one.
		label := s.DislikeLabel
		if *row.Value == 1 {
			label = s.LikeLabel
		}
		return Display{Kind: DisplayScore, Value: *row.Value, Max: 1, Label: label}
	case ChoiceSettings:
		if s.Multiple {
			return decodeSelections(row, s.Options)
		}
		return decodeChoice(row, s.Options)
	case MatrixSettings:
		return decodeMatrix(row, s.Rows, s.Columns)
	case TextSettings:
		if row.Text == nil {
			return Display{Kind: DisplayEmpty}
		}
		return Display{Kind: DisplayText, Text: *row.Text}
	default:
		if row.Text != nil {
			return Display{Kind: DisplayText, Text: *row.Text}
		}
		return Display{Kind: DisplayEmpty}
	}
}

func scoreDisplay(row EncodedResponse, max int, labels []string) Display {
	if row.Value == nil {
		return Display{Kind: DisplayEmpty}
	}
	v := *row.Value
	return Display{Kind: DisplayScore, Value: v, Max: max, Label: LabelAt(labels, v-1)}
}

func decodeChoice(row EncodedResponse, options []string) Display {
	d := Display{Kind: DisplayChoice}
	if row.Value != nil {
		d.Value = *row.Value
		d.Label = LabelAt(options, *row.Value)
	}
	// The label captured at selection time wins over the current config:
	// it reflects what the respondent actually saw.
	if row.Text != nil && *row.Text != "" {
		d.Label = *row.Text
	}
	if d.Label == "" && row.Value == nil {
		return Display{Kind: DisplayEmpty}
	}
	return d
}

func decodeSelections(row EncodedResponse, options []string) Display {
	var indices []int
	if err := json.Unmarshal(row.Data, &indices); err != nil {
		return Display{Kind: DisplayEmpty}
	}
	labels := make([]string, 0, len(indices))
	for _, idx := range indices {
		labels = append(labels, LabelAt(options, idx))
	}
	return Display{Kind: DisplaySelections, Labels: labels}
}

func decodeMatrix(row EncodedResponse, rows, columns []string) Display {
	var cells map[int]int
	if err := json.Unmarshal(row.Data, &cells); err != nil {
		return Display{Kind: DisplayEmpty}
	}
	rowIdx := make([]int, 0, len(cells))
	for r := range cells {
		rowIdx = append(rowIdx, r)
	}
	sort.Ints(rowIdx)
	out := make([]MatrixCell, 0, len(cells))
	for _, r := range rowIdx {
		c := cells[r]
		out = append(out, MatrixCell{
			RowIndex:    r,
			ColumnIndex: c,
			Row:         LabelAt(rows, r),
			Column:      LabelAt(columns, c),
		})
	}
	return Display{Kind: DisplayMatrix, Cells: out}
}

// String flattens the display into one line for plain-text contexts
// (CSV export, summaries, review cards).
func (d Display) String() string {
	switch d.Kind {
	case DisplayText:
		return d.Text
	case DisplayScore:
		if d.Label != "" {
			return d.Label
		}
		s := strconv.Itoa(d.Value)
		if d.Band != "" {
			return s + " (" + d.Band + ")"
		}
		if d.Max > 0 {
			return s + "/" + strconv.Itoa(d.Max)
		}
		return s
	case DisplayChoice:
		if d.Label != "" {
			return d.Label
		}
		return strconv.Itoa(d.Value)
	case DisplaySelections:
		parts := make([]string, 0, len(d.Labels))
		for _, l := range d.Labels {
			if l != "" {
				parts = append(parts, l)
			}
		}
		if len(parts) == 0 {
			return placeholderDash
		}
		return strings.Join(parts, ", ")
	case DisplayMatrix:
		parts := make([]string, 0, len(d.Cells))
		for _, c := range d.Cells {
			parts = append(parts, c.Row+": "+c.Column)
		}
		if len(parts) == 0 {
			return placeholderDash
		}
		return strings.Join(parts, "; ")
	}
	return placeholderDash
}
