package api

import (
	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

// Store is the persistence surface the router needs: the union of the
// per-service store interfaces. Implemented by the in-memory store and
// by the sqlite store in internal/db.
type Store interface {
	InsertProject(p *models.Project) error
	GetProject(id string) (*models.Project, error)
	GetProjectByLink(link string) (*models.Project, error)
	ListProjectsByOwner(userID string) ([]*models.Project, error)
	DeleteProject(id string) error

	InsertQuestion(q *survey.Question) error
	ListQuestions(projectID string) ([]*survey.Question, error)

	InsertResponses(rs []*models.Response) error
	ListResponsesByProject(projectID string) ([]*models.Response, error)
}

var _ Store = (*memoryStore)(nil)
