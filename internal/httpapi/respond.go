// Package httpapi holds the response shaping, request decoding and router
// scaffolding every service shares.
package httpapi

import (
	"encoding/json"
	"net/http"

	"jobboard/internal/apperr"
	"jobboard/internal/util"
)

// WriteJSON writes payload with status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteDetail writes the {"detail": msg} error body.
func WriteDetail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"detail": msg})
}

// WriteError maps err onto the error taxonomy. Unclassified errors are logged
// and reported as 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		util.LoggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	}
	WriteDetail(w, kind.Status(), apperr.Message(err))
}

// Message is the {"message": ...} body used by delete-style endpoints.
type Message struct {
	Message string `json:"message"`
}

// HandleHealth answers liveness probes.
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
