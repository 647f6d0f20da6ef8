package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/applications/internal/app"
)

var applySchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["job_id", "resume_id"],
	"properties": {
		"job_id": {"type": "string", "minLength": 1},
		"resume_id": {"type": "string", "minLength": 1},
		"cover_letter": {"type": ["string", "null"]}
	}
}`)

var decisionSchema = httpapi.MustSchema(`{
	"type": "object",
	"properties": {
		"comment": {"type": ["string", "null"]}
	}
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the applications service.
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
	return httpapi.Wrap("applications", s.router)
}

func (s *Server) routes() {
	s.router.Route("/api/applications", func(r chi.Router) {
		r.Post("/", s.guard.RequireRole(usertoken.RoleCandidate, "Only candidates can apply", s.handleApply))
		r.Get("/{id}", s.guard.Authenticated(s.handleGet))
		r.Post("/{id}/accept", s.guard.Authenticated(s.decide(domain.ApplicationAccepted)))
		r.Post("/{id}/reject", s.guard.Authenticated(s.decide(domain.ApplicationRejected)))
	})
}

type applyRequest struct {
	JobID       string `json:"job_id"`
	ResumeID    string `json:"resume_id"`
	CoverLetter string `json:"cover_letter"`
}

type applyResponse struct {
	ID      string                   `json:"id"`
	Message string                   `json:"message"`
	Status  domain.ApplicationStatus `json:"status"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req applyRequest
	if err := httpapi.Decode(r, applySchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	application, err := s.app.Apply(r.Context(), claims.UserID(), app.ApplyInput{
		JobID:       req.JobID,
		ResumeID:    req.ResumeID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, applyResponse{
		ID:      application.ID,
		Message: "Application submitted successfully",
		Status:  application.Status,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	application, err := s.app.GetApplication(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, application)
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

type decisionResponse struct {
	ID      string                   `json:"id"`
	Status  domain.ApplicationStatus `json:"status"`
	Message string                   `json:"message"`
}

func (s *Server) decide(status domain.ApplicationStatus) authz.Handler {
	resolve, message := s.app.Accept, "Application accepted successfully"
	if status == domain.ApplicationRejected {
		resolve, message = s.app.Reject, "Application rejected successfully"
	}
	return func(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
		var req decisionRequest
		if r.ContentLength != 0 {
			if err := httpapi.Decode(r, decisionSchema, &req); err != nil {
				httpapi.WriteError(w, r, err)
				return
			}
		}
		application, err := resolve(r.Context(), chi.URLParam(r, "id"), req.Comment)
		if err != nil {
			httpapi.WriteError(w, r, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, decisionResponse{ID: application.ID, Status: application.Status, Message: message})
	}
}
