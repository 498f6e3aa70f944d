package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dizaihq/dizai/internal/api"
	"github.com/dizaihq/dizai/internal/models"
	"github.com/dizaihq/dizai/internal/survey"
)

type SQLiteStore struct {
	db *sqlx.DB
}

var _ api.Store = (*SQLiteStore)(nil)

func Open(path string) (*sqlx.DB, error) {
	return sqlx.Open("sqlite3", path)
}

func NewSQLiteStore(db *sqlx.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sqlx.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

type projectRow struct {
	ID                string    `db:"id"`
	UserID            string    `db:"user_id"`
	Name              string    `db:"name"`
	Description       string    `db:"description"`
	PublicTitle       string    `db:"public_title"`
	PublicDescription string    `db:"public_description"`
	ClientBrandName   string    `db:"client_brand_name"`
	LinkUnique        string    `db:"link_unique"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r projectRow) toModel() *models.Project {
	return &models.Project{
		ID:                r.ID,
		UserID:            r.UserID,
		Name:              r.Name,
		Description:       r.Description,
		PublicTitle:       r.PublicTitle,
		PublicDescription: r.PublicDescription,
		ClientBrandName:   r.ClientBrandName,
		LinkUnique:        r.LinkUnique,
		CreatedAt:         r.CreatedAt,
	}
}

type questionRow struct {
	ID        string         `db:"id"`
	ProjectID string         `db:"project_id"`
	Text      string         `db:"question_text"`
	Type      string         `db:"question_type"`
	Config    sql.NullString `db:"scale_config"`
	Ord       int            `db:"ord"`
}

type responseRow struct {
	ID          string         `db:"id"`
	ProjectID   string         `db:"project_id"`
	QuestionID  string         `db:"question_id"`
	SessionID   string         `db:"session_id"`
	Text        sql.NullString `db:"response_text"`
	Value       sql.NullInt64  `db:"response_value"`
	Data        sql.NullString `db:"response_data"`
	SubmittedAt time.Time      `db:"submitted_at"`
}

func (s *SQLiteStore) InsertProject(p *models.Project) error {
	_, err := s.db.NamedExec(`INSERT INTO projects
		(id, user_id, name, description, public_title, public_description, client_brand_name, link_unique, created_at)
		VALUES (:id, :user_id, :name, :description, :public_title, :public_description, :client_brand_name, :link_unique, :created_at)`,
		projectRow{
			ID:                p.ID,
			UserID:            p.UserID,
			Name:              p.Name,
			Description:       p.Description,
			PublicTitle:       p.PublicTitle,
			PublicDescription: p.PublicDescription,
			ClientBrandName:   p.ClientBrandName,
			LinkUnique:        p.LinkUnique,
			CreatedAt:         p.CreatedAt,
		})
	return err
}

func (s *SQLiteStore) GetProject(id string) (*models.Project, error) {
	var r projectRow
	err := s.db.Get(&r, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toModel(), nil
}

func (s *SQLiteStore) GetProjectByLink(link string) (*models.Project, error) {
	var r projectRow
	err := s.db.Get(&r, `SELECT * FROM projects WHERE link_unique = ?`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toModel(), nil
}

func (s *SQLiteStore) ListProjectsByOwner(userID string) ([]*models.Project, error) {
	var rows []projectRow
	if err := s.db.Select(&rows, `SELECT * FROM projects WHERE user_id = ? ORDER BY created_at DESC`, userID); err != nil {
		return nil, err
	}
	out := make([]*models.Project, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *SQLiteStore) DeleteProject(id string) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) InsertQuestion(q *survey.Question) error {
	cfg := sql.NullString{}
	if q.Config != nil {
		b, err := json.Marshal(q.Config)
		if err != nil {
			return err
		}
		cfg = sql.NullString{String: string(b), Valid: true}
	}
	_, err := s.db.NamedExec(`INSERT INTO questions
		(id, project_id, question_text, question_type, scale_config, ord)
		VALUES (:id, :project_id, :question_text, :question_type, :scale_config, :ord)`,
		questionRow{
			ID:        q.ID,
			ProjectID: q.ProjectID,
			Text:      q.Text,
			Type:      string(q.Type),
			Config:    cfg,
			Ord:       q.Order,
		})
	return err
}

func (s *SQLiteStore) ListQuestions(projectID string) ([]*survey.Question, error) {
	var rows []questionRow
	if err := s.db.Select(&rows, `SELECT * FROM questions WHERE project_id = ? ORDER BY ord`, projectID); err != nil {
		return nil, err
	}
	out := make([]*survey.Question, 0, len(rows))
	for _, r := range rows {
		q := &survey.Question{
			ID:        r.ID,
			ProjectID: r.ProjectID,
			Text:      r.Text,
			Type:      survey.QuestionType(r.Type),
			Order:     r.Ord,
		}
		if r.Config.Valid {
			var cfg survey.ScaleConfig
			if err := json.Unmarshal([]byte(r.Config.String), &cfg); err != nil {
				return nil, fmt.Errorf("decode scale_config for question %s: %w", r.ID, err)
			}
			q.Config = &cfg
		}
		out = append(out, q)
	}
	return out, nil
}

// InsertResponses writes one session's rows. Rows that land stay; a
// failed row is reported but does not undo its siblings, so a session
// survives as much of itself as possible.
func (s *SQLiteStore) InsertResponses(rs []*models.Response) error {
	var errs []error
	for _, r := range rs {
		row := responseRow{
			ID:          r.ID,
			ProjectID:   r.ProjectID,
			QuestionID:  r.QuestionID,
			SessionID:   r.SessionID,
			SubmittedAt: r.SubmittedAt,
		}
		if r.Text != nil {
			row.Text = sql.NullString{String: *r.Text, Valid: true}
		}
		if r.Value != nil {
			row.Value = sql.NullInt64{Int64: int64(*r.Value), Valid: true}
		}
		if len(r.Data) > 0 {
			row.Data = sql.NullString{String: string(r.Data), Valid: true}
		}
		if _, err := s.db.NamedExec(`INSERT INTO responses
			(id, project_id, question_id, session_id, response_text, response_value, response_data, submitted_at)
			VALUES (:id, :project_id, :question_id, :session_id, :response_text, :response_value, :response_data, :submitted_at)`,
			row); err != nil {
			errs = append(errs, fmt.Errorf("insert response %s: %w", r.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *SQLiteStore) ListResponsesByProject(projectID string) ([]*models.Response, error) {
	var rows []responseRow
	if err := s.db.Select(&rows, `SELECT * FROM responses WHERE project_id = ? ORDER BY submitted_at, session_id`, projectID); err != nil {
		return nil, err
	}
	out := make([]*models.Response, 0, len(rows))
	for _, r := range rows {
		m := &models.Response{
			ID:          r.ID,
			ProjectID:   r.ProjectID,
			QuestionID:  r.QuestionID,
			SessionID:   r.SessionID,
			SubmittedAt: r.SubmittedAt,
		}
		if r.Text.Valid {
			t := r.Text.String
			m.Text = &t
		}
		if r.Value.Valid {
			v := int(r.Value.Int64)
			m.Value = &v
		}
		if r.Data.Valid {
			m.Data = json.RawMessage(r.Data.String)
		}
		out = append(out, m)
	}
	return out, nil
}
