package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/httpapi"
	"jobboard/internal/ratelimit"
	"jobboard/internal/util"
	"jobboard/pkg/domain"
	"jobboard/services/auth/internal/app"
	"jobboard/services/auth/internal/security"
)

var registerSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["email", "password", "full_name", "role"],
	"properties": {
		"email": {"type": "string", "format": "email"},
		"password": {"type": "string", "minLength": 1},
		"full_name": {"type": "string", "minLength": 1},
		"role": {"type": "string"}
	}
}`)

var loginSchema = httpapi.MustSchema(`{
	"type": "object",
	"required": ["email", "password"],
	"properties": {
		"email": {"type": "string", "format": "email"},
		"password": {"type": "string"}
	}
}`)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App             *app.App
	RegisterLimiter ratelimit.Limiter
	LoginLimiter    ratelimit.Limiter
	Alerter         *security.AuditAlerter
	TrustedProxies  *util.TrustedProxies
}

// Server exposes HTTP endpoints for the auth service.
type Server struct {
	app             *app.App
	registerLimiter ratelimit.Limiter
	loginLimiter    ratelimit.Limiter
	alerter         *security.AuditAlerter
	trustedProxies  *util.TrustedProxies
	router          chi.Router
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:             cfg.App,
		registerLimiter: cfg.RegisterLimiter,
		loginLimiter:    cfg.LoginLimiter,
		alerter:         cfg.Alerter,
		trustedProxies:  cfg.TrustedProxies,
		router:          httpapi.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return httpapi.Wrap("auth", s.router)
}

func (s *Server) routes() {
	s.router.Post("/api/auth/register", ratelimit.Guard(s.registerLimiter, "register", s.clientIP, s.handleRegister))
	s.router.Post("/api/auth/login", ratelimit.Guard(s.loginLimiter, "login", s.clientIP, s.handleLogin))
}

func (s *Server) clientIP(r *http.Request) string {
	return util.ClientIP(r, s.trustedProxies)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type registerResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.Decode(r, registerSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	user, err := s.app.Register(r.Context(), app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		s.observeFailure(r, security.EventRegister)
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, registerResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, loginSchema, &req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	token, err := s.app.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.observeFailure(r, security.EventLogin)
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, token)
}

func (s *Server) observeFailure(r *http.Request, event string) {
	if s.alerter == nil {
		return
	}
	ip := s.clientIP(r)
	result, err := s.alerter.Observe(r.Context(), event, security.OutcomeFail, ip)
	logger := util.LoggerFromContext(r.Context())
	if err != nil {
		logger.Warn("security alert counter failed", "event", event, "err", err)
		return
	}
	if result.Triggered {
		logger.Warn("security alert", "event", event, "client_ip", ip, "count", result.Count, "window", result.Window.String())
	}
}
