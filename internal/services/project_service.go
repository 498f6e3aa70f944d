package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

// ProjectStore abstracts persistence for project authoring.
type ProjectStore interface {
	InsertProject(p *models.Project) error
	GetProject(id string) (*models.Project, error)
	ListProjectsByOwner(userID string) ([]*models.Project, error)
	DeleteProject(id string) error
	InsertQuestion(q *survey.Question) error
	ListQuestions(projectID string) ([]*survey.Question, error)
}

// QuestionInput is one question as submitted by the project editor.
type QuestionInput struct {
	Text   string              `json:"question_text"`
	Type   string              `json:"question_type"`
	Config *survey.ScaleConfig `json:"scale_config,omitempty"`
}

// CreateProjectInput is the authoring payload for a new survey form.
type CreateProjectInput struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	PublicTitle       string          `json:"public_title,omitempty"`
	PublicDescription string          `json:"public_description,omitempty"`
	ClientBrandName   string          `json:"client_brand_name,omitempty"`
	Questions         []QuestionInput `json:"questions"`
}

// ProjectService owns project and question authoring.
type ProjectService struct {
	store ProjectStore
	now   func() time.Time
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject stores a project together with its questions, assigning
// gapless order indices 0..n-1 and a fresh public link.
func (s *ProjectService) CreateProject(userID string, in CreateProjectInput) (*models.Project, []*survey.Question, error) {
	if userID == "" {
		return nil, nil, NewForbiddenError("unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, nil, NewInvalidError("name required")
	}
	questions := make([]*survey.Question, 0, len(in.Questions))
	for i, qi := range in.Questions {
		q, err := buildQuestion(qi, i)
		if err != nil {
			return nil, nil, err
		}
		questions = append(questions, q)
	}

	p := &models.Project{
		ID:                shortID(8),
		UserID:            userID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		PublicTitle:       in.PublicTitle,
		PublicDescription: in.PublicDescription,
		ClientBrandName:   in.ClientBrandName,
		LinkUnique:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedAt:         s.now(),
	}
	if err := s.store.InsertProject(p); err != nil {
		return nil, nil, err
	}
	for _, q := range questions {
		q.ProjectID = p.ID
		if err := s.store.InsertQuestion(q); err != nil {
			return nil, nil, err
		}
	}
	return p, questions, nil
}

// AddQuestion appends one question to an existing project, taking the
// next order index. Order is only guaranteed gapless at creation time;
// later deletions may leave gaps and that is accepted.
func (s *ProjectService) AddQuestion(userID, projectID string, in QuestionInput) (*survey.Question, error) {
	p, err := s.ownedProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.ListQuestions(p.ID)
	if err != nil {
		return nil, err
	}
	q, err := buildQuestion(in, len(existing))
	if err != nil {
		return nil, err
	}
	q.ProjectID = p.ID
	if err := s.store.InsertQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *ProjectService) GetProject(userID, projectID string) (*models.Project, error) {
	return s.ownedProject(userID, projectID)
}

func (s *ProjectService) ListProjects(userID string) ([]*models.Project, error) {
	if userID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	return s.store.ListProjectsByOwner(userID)
}

// Questions returns a project's questions in display order.
func (s *ProjectService) Questions(userID, projectID string) ([]*survey.Question, error) {
	if _, err := s.ownedProject(userID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListQuestions(projectID)
}

func (s *ProjectService) DeleteProject(userID, projectID string) error {
	if _, err := s.ownedProject(userID, projectID); err != nil {
		return err
	}
	return s.store.DeleteProject(projectID)
}

func (s *ProjectService) ownedProject(userID, projectID string) (*models.Project, error) {
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
	return p, nil
}

// buildQuestion validates one authoring input and assigns its position.
// Selection bounds are checked here, at the authoring boundary only; the
// encode path stays permissive.
func buildQuestion(in QuestionInput, order int) (*survey.Question, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, NewInvalidError("question_text required")
	}
	qt, ok := survey.ParseQuestionType(in.Type)
	if !ok {
		return nil, NewInvalidError("unknown question_type: " + in.Type)
	}
	if err := validateConfig(qt, in.Config); err != nil {
		return nil, err
	}
	return &survey.Question{
		ID:     shortID(8),
		Text:   strings.TrimSpace(in.Text),
		Type:   qt,
		Config: in.Config,
		Order:  order,
	}, nil
}

func validateConfig(qt survey.QuestionType, cfg *survey.ScaleConfig) error {
	if cfg == nil {
		return nil
	}
	switch qt {
	case survey.TypeSingleChoice:
		if len(cfg.Options) == 0 {
			return NewInvalidError("single_choice requires options")
		}
	case survey.TypeMultipleChoice:
		if len(cfg.Options) == 0 {
			return NewInvalidError("multiple_choice requires options")
		}
		min, max := cfg.MinSelections, cfg.MaxSelections
		if max == 0 {
			max = len(cfg.Options)
		}
		if min < 0 || min > max || max > len(cfg.Options) {
			return NewInvalidError("selection bounds must satisfy min <= max <= len(options)")
		}
	case survey.TypeMatrix:
		if len(cfg.MatrixRows) == 0 || len(cfg.MatrixColumns) == 0 {
			return NewInvalidError("matrix requires rows and columns")
		}
	}
	return nil
}
