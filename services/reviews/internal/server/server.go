package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/services/reviews/internal/app"
)

// Rating bounds are checked by decodeReview before the schema runs, so an
// out-of-range rating is a 400 regardless of the other fields.
var createSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["rating"],
	"properties": {
		"job_id": {"type": "string"},
		"rating": {"type": "integer"},
		"comment": {"type": ["string", "null"]},
		"is_anonymous": {"type": ["boolean", "null"]}
	}
}`)

var updateSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["rating"],
	"properties": {
		"rating": {"type": "integer"},
		"comment": {"type": ["string", "null"]},
		"is_anonymous": {"type": ["boolean", "null"]}
	}
}`)

// authorPrefix is prepended to author ids in responses.
const authorPrefix = "user-"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the reviews service.
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
	return httpapi.Wrap("reviews", s.router)
}

func (s *Server) routes() {
	s.router.Post("/api/reviews", s.guard.RequireRole(usertoken.RoleCandidate, "Only candidates can leave reviews", s.handleCreate))
	s.router.Put("/api/reviews/{id}", s.guard.Authenticated(s.handleUpdate))
}

type reviewRequest struct {
	JobID       string `json:"job_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (req reviewRequest) input() app.ReviewInput {
	return app.ReviewInput{Rating: req.Rating, Comment: req.Comment, IsAnonymous: req.IsAnonymous}
}

type createResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type updateResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req reviewRequest
	if err := decodeReview(r, createSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	review, err := s.app.CreateReview(r.Context(), claims.UserID(), req.JobID, req.input())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, createResponse{
		ID:        review.ID,
		JobID:     review.JobID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		AuthorID:  authorPrefix + review.AuthorID,
		CreatedAt: review.CreatedAt,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req reviewRequest
	if err := decodeReview(r, updateSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	review, err := s.app.UpdateReview(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, updateResponse{
		ID:        review.ID,
		JobID:     review.JobID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		UpdatedAt: review.UpdatedAt,
	})
}

// decodeReview rejects an out-of-range numeric rating before schema
// validation so that malformed sibling fields cannot mask it.
func decodeReview(r *http.Request, schema *httpapi.Schema, dst *reviewRequest) error {
	raw, err := httpapi.ReadBody(r)
	if err != nil {
		return err
	}
	var fields struct {
		Rating json.RawMessage `json:"rating"`
	}
	if json.Unmarshal(raw, &fields) == nil && len(fields.Rating) > 0 {
		var rating float64
		if json.Unmarshal(fields.Rating, &rating) == nil {
			if err := app.CheckRatingValue(rating); err != nil {
				return err
			}
		}
	}
	return httpapi.DecodeBytes(raw, schema, dst)
}
