package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
)

// LongRow is one response row in long-format CSV: one line per
// (session, question) pair with the raw columns and the rendered value
// side by side.
type LongRow struct {
	SessionID    string
	QuestionID   string
	QuestionText string
	QuestionType string
	RawText      string
	RawValue     string
	RawData      string
	Rendered     string
	SubmittedAt  string // RFC3339; string for CSV simplicity
}

// ExportLongCSV renders rows into a long-format CSV.
func ExportLongCSV(rows []LongRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{
		"session_id", "question_id", "question_text", "question_type",
		"response_text", "response_value", "response_data", "rendered", "submitted_at",
	})
	for _, r := range rows {
		rec := []string{
			r.SessionID, r.QuestionID, r.QuestionText, r.QuestionType,
			r.RawText, r.RawValue, r.RawData, r.Rendered, r.SubmittedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportWideCSV renders a session-per-row CSV with one column per
// question header, cells holding the rendered value. inputs is a
// map[sessionID]map[questionHeader]rendered; headers keeps the
// authoring order of the question columns.
func ExportWideCSV(inputs map[string]map[string]string, headers []string) ([]byte, error) {
	sids := make([]string, 0, len(inputs))
	for sid := range inputs {
		sids = append(sids, sid)
	}
	sort.Strings(sids)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(append([]string{"session_id"}, headers...))
	for _, sid := range sids {
		row := make([]string, 0, 1+len(headers))
		row = append(row, sid)
		for _, h := range headers {
			row = append(row, inputs[sid][h])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func itoaPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
