package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/authz"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/notifications/internal/app"
)

var deviceSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["device_id"],
	"properties": {
		"device_id": {"type": "string", "minLength": 1}
	}
}`)

var sendSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["user_id", "title", "body", "type"],
	"properties": {
		"user_id": {"type": "string", "minLength": 1},
		"title": {"type": "string"},
		"body": {"type": "string"},
		"type": {"type": "string"},
		"data": {"type": ["object", "null"]}
	}
}`)

// userPrefix is prepended to user ids in device responses.
const userPrefix = "user-"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App      *app.App
	Verifier usertoken.Verifier
}

// Server exposes HTTP endpoints for the notifications service.
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
	return httpapi.Wrap("notifications", s.router)
}

func (s *Server) routes() {
	s.router.Post("/api/notifications/enable", s.guard.Authenticated(s.handleEnable))
	s.router.Post("/api/notifications/disable", s.guard.Authenticated(s.handleDisable))
	s.router.Post("/api/notifications/send", s.guard.Authenticated(s.handleSend))
}

type deviceRequest struct {
	DeviceID string `json:"device_id"`
}

type deviceResponse struct {
	UserID      string `json:"user_id"`
	DeviceID    string `json:"device_id"`
	PushEnabled bool   `json:"push_enabled"`
	Message     string `json:"message"`
}

func (s *Server) handleEnable(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req deviceRequest
	if err := httpapi.Decode(r, deviceSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	device, err := s.app.EnableDevice(r.Context(), claims.UserID(), req.DeviceID)
	s.writeDevice(w, r, device, err, "Push notifications enabled successfully")
}

func (s *Server) handleDisable(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	var req deviceRequest
	if err := httpapi.Decode(r, deviceSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	device, err := s.app.DisableDevice(r.Context(), claims.UserID(), req.DeviceID)
	s.writeDevice(w, r, device, err, "Push notifications disabled successfully")
}

func (s *Server) writeDevice(w http.ResponseWriter, r *http.Request, device domain.Device, err error, msg string) {
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, deviceResponse{
		UserID:      userPrefix + device.UserID,
		DeviceID:    device.DeviceID,
		PushEnabled: device.PushEnabled,
		Message:     msg,
	})
}

type sendRequest struct {
	UserID string         `json:"user_id"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Type   string         `json:"type"`
	Data   map[string]any `json:"data"`
}

type sendResponse struct {
	NotificationID string                `json:"notification_id"`
	Status         domain.DeliveryStatus `json:"status"`
	SentAt         *time.Time            `json:"sent_at"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
	var req sendRequest
	if err := httpapi.Decode(r, sendSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	n, err := s.app.Send(r.Context(), app.SendInput{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
		Type:   req.Type,
		Data:   req.Data,
	})
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, sendResponse{NotificationID: n.ID, Status: n.Status, SentAt: n.SentAt})
}
