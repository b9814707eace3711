package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler error funnels through respondError, which logs the full
// technical error server-side with the request ID, maps it to an HTTP
// status, and renders it as JSON for API requests or as an HTML error
// page for browser requests.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gnoronha42/flor-de-maria-supply/internal/inventory"
	"github.com/gnoronha42/flor-de-maria-supply/internal/logging"
	"github.com/gnoronha42/flor-de-maria-supply/internal/web/templates"
)

// invalidf builds an error that maps to a 400 response.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", inventory.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes a response appropriate for the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Keep internals out of responses.
		message = "internal server error"
	}

	if wantsJSON(r) {
		writeJSON(w, status, map[string]any{
			"success": false,
			"error":   message,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.ErrorPage(status, message).Render(r.Context(), w)
}

// render writes a page component, logging failures that happen after the
// status line is already out.
func (s *Server) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error",
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but log.
		slog.Error("json encode error", "error", err.Error())
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
