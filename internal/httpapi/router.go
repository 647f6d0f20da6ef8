package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jobboard/internal/util"
)

// NewRouter returns a chi router with panic recovery, /health and JSON
// 404/405 responses.
func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", HandleHealth)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

// Wrap applies the shared middleware chain to a service router.
func Wrap(service string, h http.Handler) http.Handler {
	return util.WithRequestID(util.WithRequestLog(service, util.WithSecurityHeaders(util.WithCORS(h))))
}
