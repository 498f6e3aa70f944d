package survey

// QuestionType identifies one of the twelve supported question kinds.
// It is immutable once a question is created and selects which
// configuration fields are meaningful and which control renders it.
type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeNPS            QuestionType = "nps"
	TypeCSAT           QuestionType = "csat"
	TypeCES            QuestionType = "ces"
	TypeStars          QuestionType = "stars"
	TypeEmojis         QuestionType = "emojis"
	TypeHearts         QuestionType = "hearts"
	TypeSingleChoice   QuestionType = "single_choice"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeLikeDislike    QuestionType = "like_dislike"
	TypeLikert         QuestionType = "likert"
	TypeMatrix         QuestionType = "matrix"
)

// AllTypes returns the closed set of question types in authoring order.
func AllTypes() []QuestionType {
	return []QuestionType{
		TypeText, TypeNPS, TypeCSAT, TypeCES, TypeStars, TypeEmojis,
		TypeHearts, TypeSingleChoice, TypeMultipleChoice, TypeLikeDislike,
		TypeLikert, TypeMatrix,
	}
}

// ParseQuestionType maps a stored string onto a QuestionType.
// Unrecognized values report ok=false; callers fall back to TypeText
// rather than failing, so old rows with retired types still render.
func ParseQuestionType(s string) (QuestionType, bool) {
	t := QuestionType(s)
	switch t {
	case TypeText, TypeNPS, TypeCSAT, TypeCES, TypeStars, TypeEmojis,
		TypeHearts, TypeSingleChoice, TypeMultipleChoice, TypeLikeDislike,
		TypeLikert, TypeMatrix:
		return t, true
	}
	return TypeText, false
}

// Valid reports whether t is one of the twelve known types.
func (t QuestionType) Valid() bool {
	_, ok := ParseQuestionType(string(t))
	return ok
}

// MinMaxLabels are the two endpoint captions of a linear scale.
type MinMaxLabels struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// ScaleConfig is the persisted, structurally-open configuration record.
// It carries the superset of fields across all question types; only the
// subset relevant to the question's type is read. Stale fields left over
// from a prior type change are ignored by Resolve, which projects the
// record onto a per-type Settings variant.
type ScaleConfig struct {
	// NPS
	NPSLabels *MinMaxLabels `json:"npsLabels,omitempty"`

	// CSAT
	CSATScale  int      `json:"csatScale,omitempty"`
	CSATLabels []string `json:"csatLabels,omitempty"`

	// CES
	CESScale  int           `json:"cesScale,omitempty"`
	CESLabels *MinMaxLabels `json:"cesLabels,omitempty"`

	// Stars and hearts
	MaxValue int `json:"maxValue,omitempty"`

	// Emojis
	EmojiSet []string `json:"emojiSet,omitempty"`

	// Single and multiple choice
	Options       []string `json:"options,omitempty"`
	MinSelections int      `json:"minSelections,omitempty"`
	MaxSelections int      `json:"maxSelections,omitempty"`

	// Likert
	LikertScale  int      `json:"likertScale,omitempty"`
	LikertLabels []string `json:"likertLabels,omitempty"`

	// Matrix
	MatrixRows    []string `json:"matrixRows,omitempty"`
	MatrixColumns []string `json:"matrixColumns,omitempty"`

	// Like/dislike
	LikeLabel    string `json:"likeLabel,omitempty"`
	DislikeLabel string `json:"dislikeLabel,omitempty"`

	// Generic
	IsRequired  bool   `json:"isRequired,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty"`
}

// Question is one typed prompt within a project.
type Question struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"project_id,omitempty"`
	Text      string       `json:"question_text"`
	Type      QuestionType `json:"question_type"`
	Config    *ScaleConfig `json:"scale_config,omitempty"`
	Order     int          `json:"order_index"`
}
