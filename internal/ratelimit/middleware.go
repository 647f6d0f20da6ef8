package ratelimit

import (
	"net/http"

	"jobboard/internal/httpapi"
	"jobboard/internal/util"
)

// Guard rejects requests over quota with 429. A nil limiter disables limiting.
func Guard(l Limiter, scope string, key func(*http.Request) string, next http.HandlerFunc) http.HandlerFunc {
	if l == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		k := key(r)
		if !l.Allow(r.Context(), scope+":"+k) {
			util.LoggerFromContext(r.Context()).Warn("rate limited", "scope", scope, "key", k)
			httpapi.WriteDetail(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}
