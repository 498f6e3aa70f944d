package models

import (
	"time"

	"github.com/dizaihq/dizai/internal/survey"
)

// Project is a survey form owned by one authenticated user and published
// at an unguessable public link.
type Project struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id,omitempty"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	PublicTitle       string    `json:"public_title,omitempty"`
	PublicDescription string    `json:"public_description,omitempty"`
	ClientBrandName   string    `json:"client_brand_name,omitempty"`
	LinkUnique        string    `json:"link_unique"`
	CreatedAt         time.Time `json:"created_at"`
}

// Response is one persisted answer row. Rows submitted together share a
// SessionID; the session has no entity of its own beyond that value.
// Which of the three payload columns is populated follows the question
// type (see survey.Encode).
type Response struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	QuestionID string `json:"question_id"`
	SessionID  string `json:"session_id"`
	survey.EncodedResponse
	SubmittedAt time.Time `json:"submitted_at"`
}
