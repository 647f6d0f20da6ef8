package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/verification/internal/app"
)

var passportSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["first_name", "last_name", "series", "number", "issued_by", "issued_date", "citizenship"],
	"properties": {
		"first_name": {"type": "string", "minLength": 1},
		"last_name": {"type": "string", "minLength": 1},
		"middle_name": {"type": ["string", "null"]},
		"series": {"type": "string", "minLength": 1},
		"number": {"type": "string", "minLength": 1},
		"issued_by": {"type": "string", "minLength": 1},
		"issued_date": {"type": "string", "minLength": 1},
		"citizenship": {"type": "string", "minLength": 1}
	}
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for passport verification.
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
	return httpapi.Wrap("verification", s.router)
}

func (s *Server) routes() {
	s.router.Post("/api/verification/passport", s.guard.Authenticated(s.handleSubmit))
	s.router.Get("/api/verification/passport/{id}", s.guard.Authenticated(s.handleStatus))
}

type passportRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	Series      string `json:"series"`
	Number      string `json:"number"`
	IssuedBy    string `json:"issued_by"`
	IssuedDate  string `json:"issued_date"`
	Citizenship string `json:"citizenship"`
}

type submitResponse struct {
	VerificationID string                    `json:"verification_id"`
	Status         domain.VerificationStatus `json:"status"`
	Message        string                    `json:"message"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req passportRequest
	if err := httpapi.Decode(r, passportSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	v, err := s.app.Submit(r.Context(), claims.UserID(), app.PassportInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Passport: domain.Passport{
			Series:     req.Series,
			Number:     req.Number,
			IssuedBy:   req.IssuedBy,
			IssuedDate: req.IssuedDate,
		},
		Citizenship: req.Citizenship,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, submitResponse{
		VerificationID: v.ID,
		Status:         v.Status,
		Message:        "Verification request submitted successfully",
	})
}

type verifiedDetails struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Citizenship     string `json:"citizenship"`
	PassportValid   bool   `json:"passport_valid"`
	MatchesRegistry bool   `json:"matches_registry"`
}

type verifiedResponse struct {
	VerificationID string                    `json:"verification_id"`
	Status         domain.VerificationStatus `json:"status"`
	VerifiedAt     *time.Time                `json:"verified_at"`
	Details        verifiedDetails           `json:"details"`
}

type unverifiedResponse struct {
	VerificationID string                    `json:"verification_id"`
	Status         domain.VerificationStatus `json:"status"`
	Reason         string                    `json:"reason"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	v, err := s.app.Status(r.Context(), claims.UserID(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if v.Status == domain.VerificationVerified {
		httpapi.WriteJSON(w, http.StatusOK, verifiedResponse{
			VerificationID: v.ID,
			Status:         v.Status,
			VerifiedAt:     v.VerifiedAt,
			Details: verifiedDetails{
				FirstName:       v.FirstName,
				LastName:        v.LastName,
				Citizenship:     v.Citizenship,
				PassportValid:   v.PassportValid,
				MatchesRegistry: v.MatchesRegistry,
			},
		})
		return
	}
	reason := v.Reason
	if reason == "" {
		reason = app.ReasonInProgress
		if v.Status == domain.VerificationRejected {
			reason = app.ReasonRejected
		}
	}
	httpapi.WriteJSON(w, http.StatusOK, unverifiedResponse{VerificationID: v.ID, Status: v.Status, Reason: reason})
}
