package survey

// ChoiceAnswer is the value captured by a single-choice question: the
// selected option index plus its label text at selection time.
type ChoiceAnswer struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Answer is the in-memory value captured for one question before
// submission. At most one field is set, chosen by the question type;
// the zero Answer means unanswered. Value is a pointer because 0 is a
// valid answer for like_dislike and must stay distinguishable from
// "no answer".
type Answer struct {
	Text       *string       `json:"text,omitempty"`
	Value      *int          `json:"value,omitempty"`
	Choice     *ChoiceAnswer `json:"choice,omitempty"`
	Selections []int         `json:"selections,omitempty"`
	Matrix     map[int]int   `json:"matrix,omitempty"`
}

// Answered reports whether any value has been captured.
func (a Answer) Answered() bool {
	return a.Text != nil || a.Value != nil || a.Choice != nil || a.Selections != nil || a.Matrix != nil
}

func TextAnswer(s string) Answer { return Answer{Text: &s} }

func ValueAnswer(v int) Answer { return Answer{Value: &v} }

func ChoiceAnswerOf(index int, text string) Answer {
	return Answer{Choice: &ChoiceAnswer{Index: index, Text: text}}
}

func SelectionsAnswer(indices []int) Answer {
	if indices == nil {
		indices = []int{}
	}
	return Answer{Selections: indices}
}

func MatrixAnswer(cells map[int]int) Answer {
	if cells == nil {
		cells = map[int]int{}
	}
	return Answer{Matrix: cells}
}
