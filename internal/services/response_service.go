package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

// ResponseStore abstracts persistence for the public form workflow and
// the owner-side session review.
type ResponseStore interface {
	GetProject(id string) (*models.Project, error)
	GetProjectByLink(link string) (*models.Project, error)
	ListQuestions(projectID string) ([]*survey.Question, error)
	InsertResponses(rs []*models.Response) error
	ListResponsesByProject(projectID string) ([]*models.Response, error)
}

var (
	// ErrFormNotFound is returned when a public link resolves to nothing.
	ErrFormNotFound = errors.New("form not found")
	// ErrNoQuestions flags a published form with an empty question list.
	ErrNoQuestions = errors.New("form has no questions")
)

// FormQuestionView is the flat public payload for one question: the raw
// config replaced by its resolved display parameters, so the form shell
// never re-derives defaults. Only the fields for the question's type are
// populated.
type FormQuestionView struct {
	ID            string              `json:"id"`
	Text          string              `json:"question_text"`
	Type          survey.QuestionType `json:"question_type"`
	Required      bool                `json:"required,omitempty"`
	Placeholder   string              `json:"placeholder,omitempty"`
	HelpText      string              `json:"help_text,omitempty"`
	MinLabel      string              `json:"min_label,omitempty"`
	MaxLabel      string              `json:"max_label,omitempty"`
	Scale         int                 `json:"scale,omitempty"`
	Labels        []string            `json:"labels,omitempty"`
	Emojis        []string            `json:"emojis,omitempty"`
	Max           int                 `json:"max,omitempty"`
	Options       []string            `json:"options,omitempty"`
	MinSelections int                 `json:"min_selections,omitempty"`
	MaxSelections int                 `json:"max_selections,omitempty"`
	LikeLabel     string              `json:"like_label,omitempty"`
	DislikeLabel  string              `json:"dislike_label,omitempty"`
	Rows          []string            `json:"rows,omitempty"`
	Columns       []string            `json:"columns,omitempty"`
}

// FormView is everything the public form needs to render itself.
type FormView struct {
	ProjectID   string             `json:"project_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	BrandName   string             `json:"brand_name,omitempty"`
	Questions   []FormQuestionView `json:"questions"`
}

// SessionItem is one decoded answer within a reviewed session.
type SessionItem struct {
	QuestionID   string              `json:"question_id"`
	QuestionText string              `json:"question_text"`
	QuestionType survey.QuestionType `json:"question_type"`
	Display      survey.Display      `json:"display"`
	Rendered     string              `json:"rendered"`
}

// SessionView groups one respondent's submission for review.
type SessionView struct {
	SessionID   string        `json:"session_id"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Items       []SessionItem `json:"items"`
}

// SubmitResult reports one accepted submission.
type SubmitResult struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}

// ResponseService hosts the anonymous submission workflow and the
// owner-side session review.
type ResponseService struct {
	store       ResponseStore
	now         func() time.Time
	idGenerator func() string
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: uuid.NewString,
	}
}

// PublicForm resolves a public link into the renderable form payload.
func (s *ResponseService) PublicForm(link string) (*FormView, error) {
	p, err := s.store.GetProjectByLink(link)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrFormNotFound
	}
	questions, err := s.store.ListQuestions(p.ID)
	if err != nil {
		return nil, err
	}
	title := p.PublicTitle
	if title == "" {
		title = p.Name
	}
	description := p.PublicDescription
	if description == "" {
		description = p.Description
	}
	view := &FormView{
		ProjectID:   p.ID,
		Title:       title,
		Description: description,
		BrandName:   p.ClientBrandName,
		Questions:   make([]FormQuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, buildQuestionView(q))
	}
	return view, nil
}

// SubmitSession persists one respondent's answers as a single batch
// sharing a fresh session id. One row is written per question; questions
// the respondent skipped produce an all-null row. Required-ness is the
// form shell's concern and is not enforced here. A partial insert
// failure surfaces as one aggregate error with no rollback.
func (s *ResponseService) SubmitSession(link string, answers map[string]survey.Answer) (*SubmitResult, error) {
	p, err := s.store.GetProjectByLink(link)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrFormNotFound
	}
	questions, err := s.store.ListQuestions(p.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	sessionID := s.idGenerator()
	submittedAt := s.now()
	rows := make([]*models.Response, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, &models.Response{
			ID:              shortID(12),
			ProjectID:       p.ID,
			QuestionID:      q.ID,
			SessionID:       sessionID,
			EncodedResponse: survey.Encode(*q, answers[q.ID]),
			SubmittedAt:     submittedAt,
		})
	}
	if err := s.store.InsertResponses(rows); err != nil {
		return nil, err
	}
	return &SubmitResult{SessionID: sessionID, Count: len(rows)}, nil
}

// ListSessions returns a project's responses grouped by session, newest
// first, with every row decoded against its originating question.
func (s *ResponseService) ListSessions(userID, projectID string) ([]*SessionView, error) {
	if userID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("project not found")
	}
	if p.UserID != userID {
		return nil, NewForbiddenError("forbidden")
	}
	questions, err := s.store.ListQuestions(projectID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*survey.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	rows, err := s.store.ListResponsesByProject(projectID)
	if err != nil {
		return nil, err
	}

	grouped := map[string]*SessionView{}
	order := []string{}
	for _, r := range rows {
		sv, ok := grouped[r.SessionID]
		if !ok {
			sv = &SessionView{SessionID: r.SessionID, SubmittedAt: r.SubmittedAt}
			grouped[r.SessionID] = sv
			order = append(order, r.SessionID)
		}
		q := byID[r.QuestionID]
		if q == nil {
			// Question deleted after collection; render the raw row as an
			// untyped placeholder instead of dropping it.
			q = &survey.Question{ID: r.QuestionID, Type: survey.TypeText}
		}
		d := survey.Decode(r.EncodedResponse, *q)
		sv.Items = append(sv.Items, SessionItem{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			QuestionType: q.Type,
			Display:      d,
			Rendered:     d.String(),
		})
	}
	out := make([]*SessionView, 0, len(order))
	for _, id := range order {
		out = append(out, grouped[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

// buildQuestionView projects a question's resolved settings into the
// flat wire shape. This is one of the exhaustive dispatch sites over the
// question-type set; unknown types fall through as text.
func buildQuestionView(q *survey.Question) FormQuestionView {
	v := FormQuestionView{ID: q.ID, Text: q.Text, Type: q.Type}
	if q.Config != nil {
		v.Required = q.Config.IsRequired
	}
	switch s := survey.Resolve(q.Type, q.Config).(type) {
	case survey.TextSettings:
		v.Placeholder = s.Placeholder
		v.HelpText = s.HelpText
		v.Required = s.Required
	case survey.NPSSettings:
		v.MinLabel = s.MinLabel
		v.MaxLabel = s.MaxLabel
	case survey.CSATSettings:
		v.Scale = s.Scale
		v.Labels = s.Labels
		v.Emojis = s.Emojis
	case survey.CESSettings:
		v.Scale = s.Scale
		v.MinLabel = s.MinLabel
		v.MaxLabel = s.MaxLabel
	case survey.RatingSettings:
		v.Max = s.Max
	case survey.EmojiSettings:
		v.Emojis = s.Glyphs
	case survey.ChoiceSettings:
		v.Options = s.Options
		v.MinSelections = s.MinSelections
		v.MaxSelections = s.MaxSelections
	case survey.LikeDislikeSettings:
		v.LikeLabel = s.LikeLabel
		v.DislikeLabel = s.DislikeLabel
	case survey.LikertSettings:
		v.Scale = s.Scale
		v.Labels = s.Labels
	case survey.MatrixSettings:
		v.Rows = s.Rows
		v.Columns = s.Columns
	}
	return v
}
