package api

import (
	"sort"
	"sync"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

// memoryStore keeps everything in process memory. It backs local
// development and tests; production runs on the sqlite store.
type memoryStore struct {
	mu        sync.RWMutex
	projects  map[string]*models.Project
	questions map[string][]*survey.Question
	responses []*models.Response
}

func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		projects:  map[string]*models.Project{},
		questions: map[string][]*survey.Question{},
		responses: []*models.Response{},
	}
}

func (s *memoryStore) InsertProject(p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *memoryStore) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) GetProjectByLink(link string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.LinkUnique == link {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) ListProjectsByOwner(userID string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Project{}
	for _, p := range s.projects {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryStore) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	delete(s.questions, id)
	kept := s.responses[:0]
	for _, r := range s.responses {
		if r.ProjectID != id {
			kept = append(kept, r)
		}
	}
	s.responses = kept
	return nil
}

func (s *memoryStore) InsertQuestion(q *survey.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.questions[q.ProjectID] = append(s.questions[q.ProjectID], &cp)
	return nil
}

func (s *memoryStore) ListQuestions(projectID string) ([]*survey.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	qs := s.questions[projectID]
	out := make([]*survey.Question, 0, len(qs))
	for _, q := range qs {
		cp := *q
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *memoryStore) InsertResponses(rs []*models.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rs {
		cp := *r
		s.responses = append(s.responses, &cp)
	}
	return nil
}

func (s *memoryStore) ListResponsesByProject(projectID string) ([]*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Response{}
	for _, r := range s.responses {
		if r.ProjectID == projectID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}
