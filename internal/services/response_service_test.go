package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

func seedProject(t *testing.T, store *stubStore) (*models.Project, []*survey.Question) {
	t.Helper()
	svc := NewProjectService(store)
	p, qs, err := svc.CreateProject("u1", CreateProjectInput{
		Name:        "Pesquisa",
		PublicTitle: "Como foi seu atendimento?",
		Questions: []QuestionInput{
			{Text: "Recomendaria?", Type: "nps"},
			{Text: "Comentários", Type: "text"},
			{Text: "O que funcionou?", Type: "multiple_choice", Config: &survey.ScaleConfig{
				Options: []string{"Preço", "Prazo", "Suporte"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p, qs
}

func TestPublicFormResolvesDefaults(t *testing.T) {
	store := &stubStore{}
	p, _ := seedProject(t, store)
	svc := NewResponseService(store)

	view, err := svc.PublicForm(p.LinkUnique)
	if err != nil {
		t.Fatalf("PublicForm: %v", err)
	}
	if view.Title != "Como foi seu atendimento?" {
		t.Fatalf("title = %q", view.Title)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("form has %d questions, want 3", len(view.Questions))
	}
	nps := view.Questions[0]
	if nps.MinLabel != "Nada provável" || nps.MaxLabel != "Extremamente provável" {
		t.Fatalf("nps labels not defaulted: %+v", nps)
	}
	mc := view.Questions[2]
	if mc.MaxSelections != 3 {
		t.Fatalf("max selections = %d, want len(options)", mc.MaxSelections)
	}
}

func TestPublicFormFallsBackToInternalName(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	p, _, err := svc.CreateProject("u1", CreateProjectInput{
		Name:      "Interno",
		Questions: []QuestionInput{{Text: "q", Type: "text"}},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	view, err := NewResponseService(store).PublicForm(p.LinkUnique)
	if err != nil {
		t.Fatalf("PublicForm: %v", err)
	}
	if view.Title != "Interno" {
		t.Fatalf("title = %q, want project name fallback", view.Title)
	}
}

func TestPublicFormUnknownLink(t *testing.T) {
	svc := NewResponseService(&stubStore{})
	if _, err := svc.PublicForm("nope"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("err = %v, want ErrFormNotFound", err)
	}
}

func TestSubmitSessionWritesOneRowPerQuestion(t *testing.T) {
	store := &stubStore{}
	p, qs := seedProject(t, store)
	svc := NewResponseService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	svc.idGenerator = func() string { return "sess-1" }

	// The text question is skipped on purpose.
	result, err := svc.SubmitSession(p.LinkUnique, map[string]survey.Answer{
		qs[0].ID: survey.ValueAnswer(9),
		qs[2].ID: survey.SelectionsAnswer([]int{0, 2}),
	})
	if err != nil {
		t.Fatalf("SubmitSession: %v", err)
	}
	if result.SessionID != "sess-1" || result.Count != 3 {
		t.Fatalf("result = %+v, want 3 rows under sess-1", result)
	}
	if len(store.responses) != 3 {
		t.Fatalf("stored %d rows, want 3", len(store.responses))
	}
	byQuestion := map[string]*models.Response{}
	for _, r := range store.responses {
		if r.SessionID != "sess-1" {
			t.Fatalf("row carries session %q", r.SessionID)
		}
		byQuestion[r.QuestionID] = r
	}
	if v := byQuestion[qs[0].ID].Value; v == nil || *v != 9 {
		t.Fatalf("nps row value = %v, want 9", v)
	}
	if !byQuestion[qs[1].ID].Empty() {
		t.Fatalf("skipped question row is not all-null: %+v", byQuestion[qs[1].ID])
	}
	if string(byQuestion[qs[2].ID].Data) != "[0,2]" {
		t.Fatalf("selections row data = %s", byQuestion[qs[2].ID].Data)
	}
}

func TestSubmitSessionSurfacesStoreFailure(t *testing.T) {
	store := &stubStore{insertErr: errors.New("disk full")}
	p, qs := seedProject(t, store)
	svc := NewResponseService(store)
	_, err := svc.SubmitSession(p.LinkUnique, map[string]survey.Answer{qs[0].ID: survey.ValueAnswer(5)})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want store failure", err)
	}
}

func TestSubmitSessionEmptyForm(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	p, _, err := svc.CreateProject("u1", CreateProjectInput{Name: "vazio"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := NewResponseService(store).SubmitSession(p.LinkUnique, nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestListSessionsGroupsAndDecodes(t *testing.T) {
	store := &stubStore{}
	p, qs := seedProject(t, store)
	svc := NewResponseService(store)

	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	sessions := []string{"s-old", "s-new"}
	for i, sid := range sessions {
		sid := sid
		svc.idGenerator = func() string { return sid }
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		if _, err := svc.SubmitSession(p.LinkUnique, map[string]survey.Answer{
			qs[0].ID: survey.ValueAnswer(9 - i),
			qs[1].ID: survey.TextAnswer("ok"),
		}); err != nil {
			t.Fatalf("SubmitSession: %v", err)
		}
	}

	views, err := svc.ListSessions("u1", p.ID)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d sessions, want 2", len(views))
	}
	if views[0].SessionID != "s-new" || views[1].SessionID != "s-old" {
		t.Fatalf("session order = %s, %s; want newest first", views[0].SessionID, views[1].SessionID)
	}
	old := views[1]
	if len(old.Items) != 3 {
		t.Fatalf("session has %d items, want one per question", len(old.Items))
	}
	if old.Items[0].Display.Band != survey.BandPromoter {
		t.Fatalf("nps item band = %q, want Promoter", old.Items[0].Display.Band)
	}
	if old.Items[2].Rendered != "—" {
		t.Fatalf("skipped item rendered %q, want dash", old.Items[2].Rendered)
	}
}

func TestListSessionsRequiresOwnership(t *testing.T) {
	store := &stubStore{}
	p, _ := seedProject(t, store)
	svc := NewResponseService(store)
	if _, err := svc.ListSessions("intruder", p.ID); err == nil {
		t.Fatalf("foreign session listing allowed")
	}
	if _, err := svc.ListSessions("", p.ID); err == nil {
		t.Fatalf("anonymous session listing allowed")
	}
}
