package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dizaihq/dizai/internal/survey"
)

func TestAnalyzeBuildsPromptFromAnsweredRows(t *testing.T) {
	store := &stubStore{}
	p, qs := seedProject(t, store)
	rsvc := NewResponseService(store)
	if _, err := rsvc.SubmitSession(p.LinkUnique, map[string]survey.Answer{
		qs[0].ID: survey.ValueAnswer(3),
		qs[1].ID: survey.TextAnswer("demorou demais"),
	}); err != nil {
		t.Fatalf("SubmitSession: %v", err)
	}

	var prompt string
	complete := func(_ context.Context, p string) (string, error) {
		prompt = p
		return `{"summary":"atendimento lento","recommendations":["reduzir fila"],"negativeIssues":["demora"],"positiveHighlights":[],"metrics":{"totalResponses":2,"negativeCount":2}}`, nil
	}
	out, err := NewAnalysisService(store, complete).Analyze(context.Background(), "u1", p.ID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Summary != "atendimento lento" || out.Metrics.NegativeCount != 2 {
		t.Fatalf("analysis = %+v", out)
	}

	if !strings.Contains(prompt, "Pergunta: Recomendaria?\nResposta: 3 (Detractor)\n---\n") {
		t.Fatalf("prompt missing nps block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Pergunta: Comentários\nResposta: demorou demais\n---\n") {
		t.Fatalf("prompt missing text block:\n%s", prompt)
	}
	// The skipped multiple-choice question must not reach the model.
	if strings.Contains(prompt, "O que funcionou?") {
		t.Fatalf("unanswered question leaked into prompt:\n%s", prompt)
	}
}

func TestAnalyzeToleratesFencedOutput(t *testing.T) {
	store := &stubStore{}
	p, qs := seedProject(t, store)
	rsvc := NewResponseService(store)
	if _, err := rsvc.SubmitSession(p.LinkUnique, map[string]survey.Answer{
		qs[0].ID: survey.ValueAnswer(9),
	}); err != nil {
		t.Fatalf("SubmitSession: %v", err)
	}
	complete := func(context.Context, string) (string, error) {
		return "```json\n{\"summary\":\"ok\"}\n```", nil
	}
	out, err := NewAnalysisService(store, complete).Analyze(context.Background(), "u1", p.ID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Summary != "ok" {
		t.Fatalf("summary = %q", out.Summary)
	}
}

func TestAnalyzeFailureModes(t *testing.T) {
	store := &stubStore{}
	p, qs := seedProject(t, store)

	// Not configured.
	if _, err := NewAnalysisService(store, nil).Analyze(context.Background(), "u1", p.ID); err == nil {
		t.Fatalf("nil completion accepted")
	}
	// No answered rows.
	ok := func(context.Context, string) (string, error) { return "{}", nil }
	if _, err := NewAnalysisService(store, ok).Analyze(context.Background(), "u1", p.ID); err == nil {
		t.Fatalf("empty project analyzed")
	}

	rsvc := NewResponseService(store)
	if _, err := rsvc.SubmitSession(p.LinkUnique, map[string]survey.Answer{
		qs[0].ID: survey.ValueAnswer(5),
	}); err != nil {
		t.Fatalf("SubmitSession: %v", err)
	}
	// Provider failure maps to bad_gateway.
	boom := func(context.Context, string) (string, error) { return "", errors.New("timeout") }
	if _, err := NewAnalysisService(store, boom).Analyze(context.Background(), "u1", p.ID); err == nil {
		t.Fatalf("provider failure swallowed")
	} else if se, _ := AsServiceError(err); se == nil || se.Code != ErrorBadGateway {
		t.Fatalf("err = %v, want bad_gateway", err)
	}
	// Malformed output.
	garbage := func(context.Context, string) (string, error) { return "not json", nil }
	if _, err := NewAnalysisService(store, garbage).Analyze(context.Background(), "u1", p.ID); err == nil {
		t.Fatalf("malformed output accepted")
	}
	// Ownership.
	if _, err := NewAnalysisService(store, ok).Analyze(context.Background(), "intruder", p.ID); err == nil {
		t.Fatalf("foreign analysis allowed")
	}
}
