package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/mailing/internal/app"
)

var subscriptionSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["email", "categories"],
	"properties": {
		"email": {"type": "string", "format": "email"},
		"categories": {"type": "array", "items": {"type": "string"}}
	}
}`)

var sendSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["to", "subject"],
	"properties": {
		"to": {"type": "string", "format": "email"},
		"subject": {"type": "string"},
		"body": {"type": ["string", "null"]},
		"template_id": {"type": ["string", "null"]},
		"variables": {"type": ["object", "null"]}
	}
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the mailing service.
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
	return httpapi.Wrap("mailing", s.router)
}

func (s *Server) routes() {
	s.router.Post("/api/mailing/subscribe", s.guard.Authenticated(s.handleSubscribe))
	s.router.Post("/api/mailing/unsubscribe", s.guard.Authenticated(s.handleUnsubscribe))
	s.router.Post("/api/mailing/send", s.guard.Authenticated(s.handleSend))
}

type subscriptionRequest struct {
	Email      string   `json:"email"`
	Categories []string `json:"categories"`
}

type subscriptionResponse struct {
	Email      string   `json:"email"`
	Subscribed bool     `json:"subscribed"`
	Categories []string `json:"categories"`
	Message    string   `json:"message"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
	var req subscriptionRequest
	if err := httpapi.Decode(r, subscriptionSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	sub, err := s.app.Subscribe(r.Context(), req.Email, req.Categories)
	writeSubscription(w, r, sub, err, "You have successfully subscribed to mailing list")
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
	var req subscriptionRequest
	if err := httpapi.Decode(r, subscriptionSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	sub, err := s.app.Unsubscribe(r.Context(), req.Email, req.Categories)
	writeSubscription(w, r, sub, err, "You have successfully unsubscribed from mailing list")
}

func writeSubscription(w http.ResponseWriter, r *http.Request, sub domain.Subscription, err error, msg string) {
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, subscriptionResponse{
		Email:      sub.Email,
		Subscribed: sub.Subscribed,
		Categories: sub.Categories,
		Message:    msg,
	})
}

type sendRequest struct {
	To         string         `json:"to"`
	Subject    string         `json:"subject"`
	Body       string         `json:"body"`
	TemplateID string         `json:"template_id"`
	Variables  map[string]any `json:"variables"`
}

type sendResponse struct {
	MessageID string                `json:"message_id"`
	Status    domain.DeliveryStatus `json:"status"`
	SentAt    *time.Time            `json:"sent_at"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
	var req sendRequest
	if err := httpapi.Decode(r, sendSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	msg, err := s.app.SendEmail(r.Context(), app.EmailInput{
		To:         req.To,
		Subject:    req.Subject,
		Body:       req.Body,
		TemplateID: req.TemplateID,
		Variables:  req.Variables,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, sendResponse{MessageID: msg.ID, Status: msg.Status, SentAt: msg.SentAt})
}
