package services

import (
	"testing"
	"time"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

// stubStore backs every service test. It implements ProjectStore,
// ResponseStore, ExportStore and AnalysisStore over plain slices.
type stubStore struct {
	projects  []*models.Project
	questions []*survey.Question
	responses []*models.Response
	insertErr error
}

func (s *stubStore) InsertProject(p *models.Project) error {
	s.projects = append(s.projects, p)
	return nil
}

func (s *stubStore) GetProject(id string) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubStore) GetProjectByLink(link string) (*models.Project, error) {
	for _, p := range s.projects {
		if p.LinkUnique == link {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListProjectsByOwner(userID string) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) DeleteProject(id string) error {
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	return nil
}

func (s *stubStore) InsertQuestion(q *survey.Question) error {
	s.questions = append(s.questions, q)
	return nil
}

func (s *stubStore) ListQuestions(projectID string) ([]*survey.Question, error) {
	var out []*survey.Question
	for _, q := range s.questions {
		if q.ProjectID == projectID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubStore) InsertResponses(rs []*models.Response) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.responses = append(s.responses, rs...)
	return nil
}

func (s *stubStore) ListResponsesByProject(projectID string) ([]*models.Response, error) {
	var out []*models.Response
	for _, r := range s.responses {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestCreateProjectAssignsOrderAndLink(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	p, qs, err := svc.CreateProject("u1", CreateProjectInput{
		Name: "Pesquisa de Satisfação",
		Questions: []QuestionInput{
			{Text: "Como você avalia o atendimento?", Type: "nps"},
			{Text: "Comentários?", Type: "text"},
			{Text: "Qualidade", Type: "csat", Config: &survey.ScaleConfig{CSATScale: 3}},
		},
	})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if p.LinkUnique == "" || len(p.LinkUnique) != 32 {
		t.Fatalf("link = %q, want 32-char link", p.LinkUnique)
	}
	if len(qs) != 3 {
		t.Fatalf("created %d questions, want 3", len(qs))
	}
	for i, q := range qs {
		if q.Order != i {
			t.Fatalf("question %d has order %d", i, q.Order)
		}
		if q.ProjectID != p.ID {
			t.Fatalf("question %d not bound to project", i)
		}
	}
	if len(store.projects) != 1 || len(store.questions) != 3 {
		t.Fatalf("store holds %d projects / %d questions", len(store.projects), len(store.questions))
	}
}

func TestCreateProjectRejectsBadInput(t *testing.T) {
	svc := NewProjectService(&stubStore{})

	cases := []struct {
		name string
		in   CreateProjectInput
	}{
		{"blank name", CreateProjectInput{Name: "  "}},
		{"blank question text", CreateProjectInput{Name: "p", Questions: []QuestionInput{{Text: "", Type: "nps"}}}},
		{"unknown type", CreateProjectInput{Name: "p", Questions: []QuestionInput{{Text: "q", Type: "ranking"}}}},
		{"choice without options", CreateProjectInput{Name: "p", Questions: []QuestionInput{
			{Text: "q", Type: "single_choice", Config: &survey.ScaleConfig{}},
		}}},
		{"selection bounds inverted", CreateProjectInput{Name: "p", Questions: []QuestionInput{
			{Text: "q", Type: "multiple_choice", Config: &survey.ScaleConfig{
				Options: []string{"A", "B"}, MinSelections: 2, MaxSelections: 1,
			}},
		}}},
		{"matrix without columns", CreateProjectInput{Name: "p", Questions: []QuestionInput{
			{Text: "q", Type: "matrix", Config: &survey.ScaleConfig{MatrixRows: []string{"r"}}},
		}}},
	}
	for _, c := range cases {
		if _, _, err := svc.CreateProject("u1", c.in); err == nil {
			t.Fatalf("%s: CreateProject accepted invalid input", c.name)
		}
	}
}

func TestAddQuestionAppendsAfterExisting(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	p, _, err := svc.CreateProject("u1", CreateProjectInput{
		Name:      "p",
		Questions: []QuestionInput{{Text: "q0", Type: "text"}, {Text: "q1", Type: "nps"}},
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	q, err := svc.AddQuestion("u1", p.ID, QuestionInput{Text: "q2", Type: "stars"})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if q.Order != 2 {
		t.Fatalf("appended question order = %d, want 2", q.Order)
	}
}

func TestProjectOwnershipIsEnforced(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	p, _, err := svc.CreateProject("owner", CreateProjectInput{Name: "p"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := svc.GetProject("intruder", p.ID); err == nil {
		t.Fatalf("foreign read allowed")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("foreign read error = %v, want forbidden", err)
	}
	if err := svc.DeleteProject("intruder", p.ID); err == nil {
		t.Fatalf("foreign delete allowed")
	}
	if _, err := svc.GetProject("owner", "missing"); err == nil {
		t.Fatalf("missing project read succeeded")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("missing project error = %v, want not_found", err)
	}
	if err := svc.DeleteProject("owner", p.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(store.projects) != 0 {
		t.Fatalf("project not removed")
	}
}

func TestListProjectsFiltersByOwner(t *testing.T) {
	store := &stubStore{}
	svc := NewProjectService(store)
	if _, _, err := svc.CreateProject("u1", CreateProjectInput{Name: "a"}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, _, err := svc.CreateProject("u2", CreateProjectInput{Name: "b"}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	ps, err := svc.ListProjects("u1")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(ps) != 1 || ps[0].Name != "a" {
		t.Fatalf("ListProjects(u1) = %+v", ps)
	}
}
