package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/apperr"
	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/jobs/internal/app"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxOffset    = math.MaxInt32
)

const jobProperties = `{
		"title": {"type": "string"},
		"description": {"type": "string"},
		"requirements": {"type": "array", "items": {"type": "string"}},
		"salary": {"type": "number"},
		"currency": {"type": "string"},
		"location": {"type": "string"},
		"employment_type": {"type": "string"},
		"company_name": {"type": "string"}
	}`

var jobSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["title", "description", "requirements", "salary", "currency", "location", "employment_type"],
	"properties": ` + jobProperties + `
}`)

var jobPatchSchema = httpapi.MustSchema(`{
	"type": "object",
	"properties": ` + jobProperties + `
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the jobs service.
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
	return httpapi.Wrap("jobs", s.router)
}

func (s *Server) routes() {
	s.router.Route("/api/jobs", func(r chi.Router) {
		r.Put("/", s.employer(s.handleCreate))
		r.Get("/search", s.handleSearch)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.employer(s.handleReplace))
		r.Patch("/{id}", s.employer(s.handlePatch))
		r.Delete("/{id}", s.employer(s.handleDelete))
	})
}

func (s *Server) employer(next authz.Handler) http.HandlerFunc {
	return s.guard.RequireRole(usertoken.RoleEmployer, "User is not an employer", next)
}

type jobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	Salary         float64  `json:"salary"`
	Currency       string   `json:"currency"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	CompanyName    string   `json:"company_name"`
}

func (req jobRequest) input() app.JobInput {
	return app.JobInput{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Salary:         req.Salary,
		Currency:       req.Currency,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		CompanyName:    req.CompanyName,
	}
}

type jobPatchRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Requirements   *[]string `json:"requirements"`
	Salary         *float64  `json:"salary"`
	Currency       *string   `json:"currency"`
	Location       *string   `json:"location"`
	EmploymentType *string   `json:"employment_type"`
	CompanyName    *string   `json:"company_name"`
}

type jobMessage struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req jobRequest
	if err := httpapi.Decode(r, jobSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	job, err := s.app.CreateJob(r.Context(), claims.UserID(), req.input())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, jobMessage{ID: job.ID, Message: "Job created successfully"})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req jobRequest
	if err := httpapi.Decode(r, jobSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	job, err := s.app.ReplaceJob(r.Context(), claims.UserID(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, jobMessage{ID: job.ID, Message: "Job updated successfully"})
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req jobPatchRequest
	if err := httpapi.Decode(r, jobPatchSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	job, err := s.app.PatchJob(r.Context(), claims.UserID(), chi.URLParam(r, "id"), app.JobPatch{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Salary:         req.Salary,
		Currency:       req.Currency,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		CompanyName:    req.CompanyName,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, jobMessage{ID: job.ID, Message: "Job updated successfully"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	if err := s.app.DeleteJob(r.Context(), claims.UserID(), chi.URLParam(r, "id")); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.Message{Message: "Job deleted successfully"})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	job, err := s.app.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, job)
}

type searchHit struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	SalaryFrom     float64   `json:"salary_from"`
	SalaryTo       float64   `json:"salary_to"`
	Currency       string    `json:"currency"`
	EmploymentType string    `json:"employment_type"`
	PostedAt       time.Time `json:"posted_at"`
}

type searchResponse struct {
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Total   int64       `json:"total"`
	Results []searchHit `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	res, err := s.app.SearchJobs(r.Context(), filter)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	hits := make([]searchHit, 0, len(res.Jobs))
	for _, job := range res.Jobs {
		hits = append(hits, searchHit{
			ID:             job.ID,
			Title:          job.Title,
			CompanyName:    job.CompanyName,
			Location:       job.Location,
			SalaryFrom:     job.SalaryFrom,
			SalaryTo:       job.SalaryTo,
			Currency:       job.Currency,
			EmploymentType: job.EmploymentType,
			PostedAt:       job.PostedAt,
		})
	}
	httpapi.WriteJSON(w, http.StatusOK, searchResponse{Page: res.Page, Limit: res.Limit, Total: res.Total, Results: hits})
}

func parseFilter(r *http.Request) (domain.JobFilter, error) {
	q := r.URL.Query()
	filter := domain.JobFilter{
		Query:          q.Get("query"),
		Location:       q.Get("location"),
		EmploymentType: q.Get("employment_type"),
		Page:           defaultPage,
		Limit:          defaultLimit,
	}
	var err error
	if filter.Page, err = intParam(q.Get("page"), "page", defaultPage, 1, 0); err != nil {
		return filter, err
	}
	if filter.Limit, err = intParam(q.Get("limit"), "limit", defaultLimit, 1, maxLimit); err != nil {
		return filter, err
	}
	if filter.Page-1 > maxOffset/filter.Limit {
		return filter, apperr.NewUnprocessable("page: out of range")
	}
	if filter.SalaryFrom, err = floatParam(q.Get("salary_from"), "salary_from"); err != nil {
		return filter, err
	}
	if filter.SalaryTo, err = floatParam(q.Get("salary_to"), "salary_to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// intParam parses an optional integer in [lo, hi]; hi <= 0 means unbounded.
func intParam(raw, name string, def, lo, hi int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NewUnprocessable(name + ": must be an integer")
	}
	if n < lo {
		return 0, apperr.NewUnprocessable(name + ": must be >= " + strconv.Itoa(lo))
	}
	if hi > 0 && n > hi {
		return 0, apperr.NewUnprocessable(name + ": must be <= " + strconv.Itoa(hi))
	}
	return n, nil
}

func floatParam(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.NewUnprocessable(name + ": must be a number")
	}
	return &v, nil
}
