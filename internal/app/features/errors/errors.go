// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
)

// Handler answers unknown routes and wrong methods with JSON envelopes.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, &apperr.Error{Kind: apperr.KindNotFound, Message: "Route not found: " + r.Method + " " + r.URL.Path}, "")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusMethodNotAllowed, respond.Envelope{
		Success: false,
		Message: "Method " + r.Method + " not allowed on " + r.URL.Path,
	})
}
