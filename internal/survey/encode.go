package survey

import "encoding/json"

// EncodedResponse is the three-column persisted shape of one answer.
// Exactly one of Text/Value/Data is non-nil for an answered question;
// all three are nil for an unanswered one. Which column carries the
// answer is fixed by the question type, except single_choice which
// stores its label in Text and its index in Value.
type EncodedResponse struct {
	Text  *string         `json:"response_text"`
	Value *int            `json:"response_value"`
	Data  json.RawMessage `json:"response_data"`
}

// Empty reports whether no column is populated.
func (r EncodedResponse) Empty() bool {
	return r.Text == nil && r.Value == nil && len(r.Data) == 0
}

// Encode maps a question's in-memory answer into its persisted shape.
// An unanswered value encodes as all-null; whether that is acceptable
// (required questions) is the caller's decision, not enforced here.
// Answer fields that do not match the question type are ignored, so a
// malformed shell value degrades to an unanswered row instead of
// corrupting a column.
func Encode(q Question, a Answer) EncodedResponse {
	switch q.Type {
	case TypeText:
		if a.Text == nil {
			return EncodedResponse{}
		}
		return EncodedResponse{Text: a.Text}
	case TypeNPS, TypeCSAT, TypeCES, TypeStars, TypeEmojis, TypeHearts, TypeLikert, TypeLikeDislike:
		if a.Value == nil {
			return EncodedResponse{}
		}
		return EncodedResponse{Value: a.Value}
	case TypeSingleChoice:
		if a.Choice == nil {
			return EncodedResponse{}
		}
		text := a.Choice.Text
		index := a.Choice.Index
		return EncodedResponse{Text: &text, Value: &index}
	case TypeMultipleChoice:
		if a.Selections == nil {
			return EncodedResponse{}
		}
		return EncodedResponse{Data: mustJSON(a.Selections)}
	case TypeMatrix:
		if a.Matrix == nil {
			return EncodedResponse{}
		}
		return EncodedResponse{Data: mustJSON(a.Matrix)}
	default:
		// Unknown types encode like text so nothing is ever dropped on
		// the floor at submit time.
		if a.Text == nil {
			return EncodedResponse{}
		}
		return EncodedResponse{Text: a.Text}
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// []int and map[int]int cannot fail to marshal.
		return nil
	}
	return b
}
