package services

import (
	"time"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

type ExportStore interface {
	GetProject(id string) (*models.Project, error)
	ListQuestions(projectID string) ([]*survey.Question, error)
	ListResponsesByProject(projectID string) ([]*models.Response, error)
}

type ExportParams struct {
	UserID    string
	ProjectID string
	Format    string
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// ExportCSV renders a project's collected responses as CSV. The long
// format writes one line per (session, question) pair with the raw
// columns preserved; the wide format writes one line per session with
// a column per question holding the rendered value.
func (s *ExportService) ExportCSV(params ExportParams) (*ExportResult, error) {
	if params.ProjectID == "" {
		return nil, NewInvalidError("project_id required")
	}
	if params.UserID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	format := params.Format
	if format == "" {
		format = "long"
	}
	p, err := s.store.GetProject(params.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	if p.UserID != params.UserID {
		return nil, NewForbiddenError("forbidden")
	}
	questions, err := s.store.ListQuestions(params.ProjectID)
	if err != nil {
		return nil, err
	}
	rs, err := s.store.ListResponsesByProject(params.ProjectID)
	if err != nil {
		return nil, err
	}

	switch format {
	case "long":
		b, err := ExportLongCSV(buildLongRows(questions, rs))
		if err != nil {
			return nil, err
		}
		return &ExportResult{Filename: "responses_long.csv", ContentType: "text/csv; charset=utf-8", Data: b}, nil
	case "wide":
		mp, headers := buildWideMap(questions, rs)
		b, err := ExportWideCSV(mp, headers)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Filename: "responses_wide.csv", ContentType: "text/csv; charset=utf-8", Data: b}, nil
	default:
		return nil, NewInvalidError("unsupported format")
	}
}

func buildLongRows(questions []*survey.Question, rs []*models.Response) []LongRow {
	byID := questionIndex(questions)
	out := make([]LongRow, 0, len(rs))
	for _, r := range rs {
		q := byID[r.QuestionID]
		if q == nil {
			q = &survey.Question{ID: r.QuestionID, Type: survey.TypeText}
		}
		text := ""
		if r.Text != nil {
			text = *r.Text
		}
		out = append(out, LongRow{
			SessionID:    r.SessionID,
			QuestionID:   q.ID,
			QuestionText: q.Text,
			QuestionType: string(q.Type),
			RawText:      text,
			RawValue:     itoaPtr(r.Value),
			RawData:      string(r.Data),
			Rendered:     survey.Decode(r.EncodedResponse, *q).String(),
			SubmittedAt:  r.SubmittedAt.Format(time.RFC3339),
		})
	}
	return out
}

func buildWideMap(questions []*survey.Question, rs []*models.Response) (map[string]map[string]string, []string) {
	byID := questionIndex(questions)
	headers := make([]string, 0, len(questions))
	for _, q := range questions {
		headers = append(headers, q.Text)
	}
	mp := map[string]map[string]string{}
	for _, r := range rs {
		q := byID[r.QuestionID]
		if q == nil {
			continue
		}
		if mp[r.SessionID] == nil {
			mp[r.SessionID] = map[string]string{}
		}
		mp[r.SessionID][q.Text] = survey.Decode(r.EncodedResponse, *q).String()
	}
	return mp, headers
}

func questionIndex(questions []*survey.Question) map[string]*survey.Question {
	byID := make(map[string]*survey.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID
}
