package survey

import "strconv"

// Control is the interactive rendering of one question. The presentation
// shell builds one per question via NewControl, reads its display state,
// and drives it through the type-specific interaction methods. Every
// interaction updates the control's current answer and notifies the
// shell's onChange callback; in disabled mode (previews, read-only
// dialogs) interaction methods are no-ops.
type Control interface {
	QuestionType() QuestionType
	Disabled() bool
	// Current returns the answer captured so far; the zero Answer means
	// the respondent has not interacted yet.
	Current() Answer
}

type controlBase struct {
	qtype    QuestionType
	disabled bool
	current  Answer
	onChange func(Answer)
}

func (c *controlBase) QuestionType() QuestionType { return c.qtype }
func (c *controlBase) Disabled() bool             { return c.disabled }
func (c *controlBase) Current() Answer            { return c.current }

func (c *controlBase) set(a Answer) {
	c.current = a
	if c.onChange != nil {
		c.onChange(a)
	}
}

// TextControl renders a free-text entry area.
type TextControl struct {
	controlBase
	Placeholder string
	HelpText    string
	Required    bool
}

// Input replaces the entered text, firing onChange on every edit.
func (c *TextControl) Input(s string) {
	if c.disabled {
		return
	}
	c.set(TextAnswer(s))
}

func (c *TextControl) Value() string {
	if c.current.Text == nil {
		return ""
	}
	return *c.current.Text
}

// NPSControl renders the fixed row of eleven buttons valued 0 through 10.
type NPSControl struct {
	controlBase
	MinLabel string
	MaxLabel string
}

func (c *NPSControl) Buttons() int { return npsRange }

func (c *NPSControl) ButtonLabel(i int) string { return strconv.Itoa(i) }

// Press selects the button at index i; the answer value equals the index.
func (c *NPSControl) Press(i int) {
	if c.disabled || i < 0 || i >= npsRange {
		return
	}
	c.set(ValueAnswer(i))
}

func (c *NPSControl) Selected(i int) bool {
	return c.current.Value != nil && *c.current.Value == i
}

// CSATControl renders one emoji+caption cell per scale point.
type CSATControl struct {
	controlBase
	Scale  int
	labels []string
	emojis []string
}

func (c *CSATControl) Label(i int) string { return LabelAt(c.labels, i) }
func (c *CSATControl) Emoji(i int) string { return LabelAt(c.emojis, i) }

// Press selects cell i; the answer value is i+1.
func (c *CSATControl) Press(i int) {
	if c.disabled || i < 0 || i >= c.Scale {
		return
	}
	c.set(ValueAnswer(i + 1))
}

func (c *CSATControl) Selected(i int) bool {
	return c.current.Value != nil && *c.current.Value == i+1
}

// CESControl renders numbered effort buttons 1..Scale with endpoint
// captions underneath.
type CESControl struct {
	controlBase
	Scale    int
	MinLabel string
	MaxLabel string
}

func (c *CESControl) Press(i int) {
	if c.disabled || i < 0 || i >= c.Scale {
		return
	}
	c.set(ValueAnswer(i + 1))
}

func (c *CESControl) Selected(i int) bool {
	return c.current.Value != nil && *c.current.Value == i+1
}

// RatingControl renders a row of Max icon buttons (stars or hearts).
type RatingControl struct {
	controlBase
	Icon string
	Max  int
}

// Press selects icon i (0-indexed); the answer value is i+1.
func (c *RatingControl) Press(i int) {
	if c.disabled || i < 0 || i >= c.Max {
		return
	}
	c.set(ValueAnswer(i + 1))
}

// Filled reports the visual fill state of icon i: filled when its index
// is below the current value, so pressing the 3rd icon fills icons 0..2.
func (c *RatingControl) Filled(i int) bool {
	return c.current.Value != nil && i < *c.current.Value
}

// EmojiControl renders one button per glyph.
type EmojiControl struct {
	controlBase
	Glyphs []string
}

func (c *EmojiControl) Press(i int) {
	if c.disabled || i < 0 || i >= len(c.Glyphs) {
		return
	}
	c.set(ValueAnswer(i + 1))
}

func (c *EmojiControl) Selected(i int) bool {
	return c.current.Value != nil && *c.current.Value == i+1
}

// LikeDislikeControl renders exactly two mutually exclusive buttons.
// Like stores 1, dislike stores 0; a stored 0 is a real answer and is
// distinguished from "unanswered" by the caller through Answer.Value.
type LikeDislikeControl struct {
	controlBase
	LikeLabel    string
	DislikeLabel string
}

func (c *LikeDislikeControl) PressLike() {
	if c.disabled {
		return
	}
	c.set(ValueAnswer(1))
}

func (c *LikeDislikeControl) PressDislike() {
	if c.disabled {
		return
	}
	c.set(ValueAnswer(0))
}

func (c *LikeDislikeControl) LikeSelected() bool {
	return c.current.Value != nil && *c.current.Value == 1
}

func (c *LikeDislikeControl) DislikeSelected() bool {
	return c.current.Value != nil && *c.current.Value == 0
}

// SingleChoiceControl renders one radio option per configured label.
type SingleChoiceControl struct {
	controlBase
	Options []string
}

// Select picks option i, capturing both the index and its label text.
func (c *SingleChoiceControl) Select(i int) {
	if c.disabled || i < 0 || i >= len(c.Options) {
		return
	}
	c.set(ChoiceAnswerOf(i, c.Options[i]))
}

func (c *SingleChoiceControl) Selected(i int) bool {
	return c.current.Choice != nil && c.current.Choice.Index == i
}

// MultipleChoiceControl renders one checkbox per option and enforces the
// selection ceiling at toggle time.
type MultipleChoiceControl struct {
	controlBase
	Options       []string
	MinSelections int
	MaxSelections int
}

// Toggle flips option i. Adding a selection beyond MaxSelections is
// silently rejected (the control does not update); removing is always
// permitted, the minimum is advisory only.
func (c *MultipleChoiceControl) Toggle(i int) {
	if c.disabled || i < 0 || i >= len(c.Options) {
		return
	}
	cur := c.current.Selections
	next := make([]int, 0, len(cur)+1)
	removed := false
	for _, idx := range cur {
		if idx == i {
			removed = true
			continue
		}
		next = append(next, idx)
	}
	if !removed {
		if c.MaxSelections > 0 && len(cur)+1 > c.MaxSelections {
			return
		}
		next = append(next, i)
	}
	c.set(SelectionsAnswer(next))
}

func (c *MultipleChoiceControl) Checked(i int) bool {
	for _, idx := range c.current.Selections {
		if idx == i {
			return true
		}
	}
	return false
}

// Advisory returns the helper text describing the selection bounds, or
// "" when no bound is tighter than the option count.
func (c *MultipleChoiceControl) Advisory() string {
	min, max, n := c.MinSelections, c.MaxSelections, len(c.Options)
	switch {
	case min > 0 && max < n:
		return "Selecione entre " + strconv.Itoa(min) + " e " + strconv.Itoa(max) + " opções"
	case min > 0:
		return "Selecione no mínimo " + strconv.Itoa(min) + " opção(ões)"
	case max < n:
		return "Selecione no máximo " + strconv.Itoa(max) + " opção(ões)"
	}
	return ""
}

// LikertControl renders one full-width button per agreement level.
type LikertControl struct {
	controlBase
	Scale  int
	labels []string
}

func (c *LikertControl) Label(i int) string { return LabelAt(c.labels, i) }

func (c *LikertControl) Press(i int) {
	if c.disabled || i < 0 || i >= c.Scale {
		return
	}
	c.set(ValueAnswer(i + 1))
}

func (c *LikertControl) Selected(i int) bool {
	return c.current.Value != nil && *c.current.Value == i+1
}

// MatrixControl renders a rows × columns grid of independent single-select
// radio groups, one per row.
type MatrixControl struct {
	controlBase
	Rows    []string
	Columns []string
}

// Select picks column col for row. Rows are independent; selecting in one
// row never touches another row's selection.
func (c *MatrixControl) Select(row, col int) {
	if c.disabled || row < 0 || row >= len(c.Rows) || col < 0 || col >= len(c.Columns) {
		return
	}
	next := make(map[int]int, len(c.current.Matrix)+1)
	for r, v := range c.current.Matrix {
		next[r] = v
	}
	next[row] = col
	c.set(MatrixAnswer(next))
}

func (c *MatrixControl) SelectedColumn(row int) (int, bool) {
	col, ok := c.current.Matrix[row]
	return col, ok
}

// NewControl builds the interactive control for a question from its type,
// resolved configuration, the current answer, and the shell's change
// callback. onChange may be nil (read-only composition). Unrecognized
// question types degrade to a text control rather than failing.
func NewControl(q Question, current Answer, onChange func(Answer), disabled bool) Control {
	base := controlBase{qtype: q.Type, disabled: disabled, current: current, onChange: onChange}
	switch s := Resolve(q.Type, q.Config).(type) {
	case NPSSettings:
		return &NPSControl{controlBase: base, MinLabel: s.MinLabel, MaxLabel: s.MaxLabel}
	case CSATSettings:
		return &CSATControl{controlBase: base, Scale: s.Scale, labels: s.Labels, emojis: s.Emojis}
	case CESSettings:
		return &CESControl{controlBase: base, Scale: s.Scale, MinLabel: s.MinLabel, MaxLabel: s.MaxLabel}
	case RatingSettings:
		return &RatingControl{controlBase: base, Icon: s.Icon, Max: s.Max}
	case EmojiSettings:
		return &EmojiControl{controlBase: base, Glyphs: s.Glyphs}
	case LikeDislikeSettings:
		return &LikeDislikeControl{controlBase: base, LikeLabel: s.LikeLabel, DislikeLabel: s.DislikeLabel}
	case ChoiceSettings:
		if s.Multiple {
			return &MultipleChoiceControl{controlBase: base, Options: s.Options, MinSelections: s.MinSelections, MaxSelections: s.MaxSelections}
		}
		return &SingleChoiceControl{controlBase: base, Options: s.Options}
	case LikertSettings:
		return &LikertControl{controlBase: base, Scale: s.Scale, labels: s.Labels}
	case MatrixSettings:
		return &MatrixControl{controlBase: base, Rows: s.Rows, Columns: s.Columns}
	case TextSettings:
		return &TextControl{controlBase: base, Placeholder: s.Placeholder, HelpText: s.HelpText, Required: s.Required}
	default:
		return &TextControl{controlBase: base}
	}
}
