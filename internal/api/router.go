package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dizaihq/dizai/internal/middleware"
	"github.com/dizaihq/dizai/internal/services"
	"github.com/dizaihq/dizai/internal/survey"
)

type Router struct {
	projects  *services.ProjectService
	responses *services.ResponseService
	exports   *services.ExportService
	analysis  *services.AnalysisService
}

func NewRouter(store Store, complete services.CompletionFunc) *Router {
	return &Router{
		projects:  services.NewProjectService(store),
		responses: services.NewResponseService(store),
		exports:   services.NewExportService(store),
		analysis:  services.NewAnalysisService(store, complete),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/projects", rt.handleProjects)       // POST, GET
	mux.HandleFunc("/api/projects/", rt.handleProjectScoped) // GET/DELETE {id}, questions, sessions, export, analysis
	mux.HandleFunc("/api/forms/", rt.handleFormScoped)       // GET {link}, POST {link}/responses
}

// POST /api/projects — create with inline questions
// GET  /api/projects — list own projects
func (rt *Router) handleProjects(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserIDFromContext(r.Context())
	switch r.Method {
	case http.MethodPost:
		var in services.CreateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, qs, err := rt.projects.CreateProject(uid, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"project": p, "questions": qs})
	case http.MethodGet:
		ps, err := rt.projects.ListProjects(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": ps})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// /api/projects/{id}
// /api/projects/{id}/questions
// /api/projects/{id}/sessions
// /api/projects/{id}/export?format=long|wide
// /api/projects/{id}/analysis
func (rt *Router) handleProjectScoped(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserIDFromContext(r.Context())
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			p, err := rt.projects.GetProject(uid, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			qs, err := rt.projects.Questions(uid, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"project": p, "questions": qs})
		case http.MethodDelete:
			if err := rt.projects.DeleteProject(uid, id); err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "questions":
		switch r.Method {
		case http.MethodGet:
			qs, err := rt.projects.Questions(uid, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
		case http.MethodPost:
			var in services.QuestionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			q, err := rt.projects.AddQuestion(uid, id, in)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, q)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "sessions":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		views, err := rt.responses.ListSessions(uid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": views})
	case "export":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		out, err := rt.exports.ExportCSV(services.ExportParams{
			UserID:    uid,
			ProjectID: id,
			Format:    r.URL.Query().Get("format"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", out.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+out.Filename)
		_, _ = w.Write(out.Data)
	case "analysis":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		out, err := rt.analysis.Analyze(r.Context(), uid, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	default:
		http.NotFound(w, r)
	}
}

// GET  /api/forms/{link} — resolved public form
// POST /api/forms/{link}/responses — one session submission
func (rt *Router) handleFormScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/forms/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	link := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		view, err := rt.responses.PublicForm(link)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
		return
	}

	if parts[1] != "responses" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Answers map[string]survey.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := rt.responses.SubmitSession(link, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrFormNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, services.ErrNoQuestions) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			http.Error(w, se.Message, http.StatusBadRequest)
		case services.ErrorUnauthorized:
			http.Error(w, se.Message, http.StatusUnauthorized)
		case services.ErrorForbidden:
			http.Error(w, se.Message, http.StatusForbidden)
		case services.ErrorNotFound:
			http.Error(w, se.Message, http.StatusNotFound)
		case services.ErrorConflict:
			http.Error(w, se.Message, http.StatusConflict)
		case services.ErrorBadGateway:
			http.Error(w, se.Message, http.StatusBadGateway)
		default:
			http.Error(w, se.Message, http.StatusInternalServerError)
		}
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
