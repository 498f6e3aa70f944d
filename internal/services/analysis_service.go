package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

type AnalysisStore interface {
	GetProject(id string) (*models.Project, error)
	ListQuestions(projectID string) ([]*survey.Question, error)
	ListResponsesByProject(projectID string) ([]*models.Response, error)
}

// CompletionFunc turns a prompt into a model completion. The service is
// agnostic to the provider behind it; callers inject whatever client
// they run.
type CompletionFunc func(ctx context.Context, prompt string) (string, error)

// AnalysisMetrics carries the coarse counters the model reports back.
type AnalysisMetrics struct {
	TotalResponses int `json:"totalResponses"`
	PositiveCount  int `json:"positiveCount"`
	NegativeCount  int `json:"negativeCount"`
	NeutralCount   int `json:"neutralCount"`
}

// Analysis is the parsed result of one analysis run.
type Analysis struct {
	Summary            string          `json:"summary"`
	Recommendations    []string        `json:"recommendations"`
	NegativeIssues     []string        `json:"negativeIssues"`
	PositiveHighlights []string        `json:"positiveHighlights"`
	Metrics            AnalysisMetrics `json:"metrics"`
}

type AnalysisService struct {
	store    AnalysisStore
	complete CompletionFunc
}

func NewAnalysisService(store AnalysisStore, complete CompletionFunc) *AnalysisService {
	return &AnalysisService{store: store, complete: complete}
}

// Analyze renders a project's collected responses into a prompt, runs
// the injected completion, and parses the structured result. Answered
// rows only; skipped questions never reach the model.
func (s *AnalysisService) Analyze(ctx context.Context, userID, projectID string) (*Analysis, error) {
	if s.complete == nil {
		return nil, NewInvalidError("analysis is not configured")
	}
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
	rs, err := s.store.ListResponsesByProject(projectID)
	if err != nil {
		return nil, err
	}
	prompt := buildAnalysisPrompt(questions, rs)
	if prompt == "" {
		return nil, NewInvalidError("no responses to analyze")
	}
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, NewBadGatewayError("analysis provider failed: " + err.Error())
	}
	return parseAnalysis(raw)
}

// buildAnalysisPrompt flattens each answered row into a
// question/answer block separated by a dashed line.
func buildAnalysisPrompt(questions []*survey.Question, rs []*models.Response) string {
	byID := questionIndex(questions)
	var b strings.Builder
	for _, r := range rs {
		q := byID[r.QuestionID]
		if q == nil {
			continue
		}
		d := survey.Decode(r.EncodedResponse, *q)
		if d.Kind == survey.DisplayEmpty {
			continue
		}
		b.WriteString("Pergunta: ")
		b.WriteString(q.Text)
		b.WriteString("\nResposta: ")
		b.WriteString(d.String())
		b.WriteString("\n---\n")
	}
	return b.String()
}

// parseAnalysis decodes the model output, tolerating a fenced code
// block around the JSON body.
func parseAnalysis(raw string) (*Analysis, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if i := strings.LastIndex(trimmed, "```"); i >= 0 {
			trimmed = trimmed[:i]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	var out Analysis
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, NewBadGatewayError("analysis provider returned malformed output")
	}
	return &out, nil
}
