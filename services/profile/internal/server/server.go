package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/profile/internal/app"
)

var passportSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["series", "number", "issued_by", "issued_date"],
	"properties": {
		"series": {"type": "string", "minLength": 1},
		"number": {"type": "string", "minLength": 1},
		"issued_by": {"type": "string", "minLength": 1},
		"issued_date": {"type": "string", "minLength": 1}
	}
}`)

var emailSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["new_email"],
	"properties": {
		"new_email": {"type": "string", "format": "email"}
	}
}`)

var phoneSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["phone_number"],
	"properties": {
		"phone_number": {"type": "string", "minLength": 1}
	}
}`)

const resumeProperties = `{
		"title": {"type": "string"},
		"position": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}},
		"experience": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"company": {"type": "string"},
					"position": {"type": "string"},
					"start_date": {"type": "string"},
					"end_date": {"type": ["string", "null"]},
					"description": {"type": ["string", "null"]}
				}
			}
		},
		"education": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"institution": {"type": "string"},
					"degree": {"type": "string"},
					"year": {"type": "integer"}
				}
			}
		},
		"description": {"type": "string"}
	}`

var resumeSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["title", "position", "skills", "experience", "education", "description"],
	"properties": ` + resumeProperties + `
}`)

var resumePatchSchema = httpapi.MustSchema(`{
	"type": "object",
	"properties": ` + resumeProperties + `
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the profile service.
type Server struct {
	app    *app.App
	guard  *authz.Guard
	router chi.Router
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:    cfg.App,
		guard:  authz.NewGuard(cfg.Verifier),
		router: httpapi.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return httpapi.Wrap("profile", s.router)
}

func (s *Server) routes() {
	s.router.Route("/api/profile", func(r chi.Router) {
		r.Get("/", s.guard.Authenticated(s.handleGetProfile))
		r.Put("/passport", s.guard.Authenticated(s.handlePassport))
		r.Put("/email", s.guard.Authenticated(s.handleEmail))
		r.Put("/phone", s.guard.Authenticated(s.handlePhone))
		r.Post("/resumes", s.guard.Authenticated(s.handleCreateResume))
		r.Get("/resumes/{id}", s.guard.Authenticated(s.handleGetResume))
		r.Patch("/resumes/{id}", s.guard.Authenticated(s.handlePatchResume))
		r.Delete("/resumes/{id}", s.guard.Authenticated(s.handleDeleteResume))
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	p, err := s.app.GetProfile(r.Context(), claims.UserID())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handlePassport(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req domain.Passport
	if err := httpapi.Decode(r, passportSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	s.finish(w, r, s.app.UpdatePassport(r.Context(), claims.UserID(), req), "Passport data updated successfully")
}

type emailRequest struct {
	NewEmail string `json:"new_email"`
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req emailRequest
	if err := httpapi.Decode(r, emailSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	s.finish(w, r, s.app.UpdateEmail(r.Context(), claims.UserID(), req.NewEmail), "Email updated successfully")
}

type phoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req phoneRequest
	if err := httpapi.Decode(r, phoneSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	s.finish(w, r, s.app.UpdatePhone(r.Context(), claims.UserID(), req.PhoneNumber), "Phone number updated successfully")
}

type resumeRequest struct {
	Title       string              `json:"title"`
	Position    string              `json:"position"`
	Skills      []string            `json:"skills"`
	Experience  []domain.Experience `json:"experience"`
	Education   []domain.Education  `json:"education"`
	Description string              `json:"description"`
}

type resumePatchRequest struct {
	Title       *string              `json:"title"`
	Position    *string              `json:"position"`
	Skills      *[]string            `json:"skills"`
	Experience  *[]domain.Experience `json:"experience"`
	Education   *[]domain.Education  `json:"education"`
	Description *string              `json:"description"`
}

type resumeCreated struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req resumeRequest
	if err := httpapi.Decode(r, resumeSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	resume, err := s.app.CreateResume(r.Context(), claims.UserID(), app.ResumeInput{
		Title:       req.Title,
		Position:    req.Position,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Education:   req.Education,
		Description: req.Description,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, resumeCreated{ID: resume.ID, Message: "Resume created successfully"})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	resume, err := s.app.GetResume(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, resume)
}

func (s *Server) handlePatchResume(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req resumePatchRequest
	if err := httpapi.Decode(r, resumePatchSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_, err := s.app.PatchResume(r.Context(), claims.UserID(), chi.URLParam(r, "id"), domain.ResumePatch{
		Title:       req.Title,
		Position:    req.Position,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Education:   req.Education,
		Description: req.Description,
	})
	s.finish(w, r, err, "Resume updated successfully")
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	err := s.app.DeleteResume(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
	s.finish(w, r, err, "Resume deleted successfully")
}

// finish writes err or, on success, {"message": msg}.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.Message{Message: msg})
}
