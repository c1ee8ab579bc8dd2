// internal/app/features/errors/logger.go
package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrorLogger logs failed requests and writes the matching error envelope.
// In dev mode the envelope's "error" field carries the underlying error.
type ErrorLogger struct {
	log *zap.Logger
	dev bool
}

// NewErrorLogger builds an ErrorLogger. dev enables error details in responses.
func NewErrorLogger(logger *zap.Logger, dev bool) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger, dev: dev}
}

func (l *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

func (l *ErrorLogger) detail(err error) string {
	if !l.dev || err == nil {
		return ""
	}
	return err.Error()
}

// LogServerError logs msg at error level and answers 500 with userMsg.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	l.log.Error(msg, l.fields(r, err)...)
	respond.Error(w, apperr.Internal(userMsg, err), l.detail(err))
}

// LogBadRequest logs msg at warn level and answers 400 with userMsg.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	l.log.Warn(msg, l.fields(r, err)...)
	respond.Error(w, apperr.Invalid("", userMsg), l.detail(err))
}

// Respond translates err into the error taxonomy and writes it.
// mongo.ErrNoDocuments becomes NotFound(resource); *apperr.Error values are
// written as they are; anything else is logged as a server error.
func (l *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, resource string, err error) {
	switch {
	case err == nil:
		return
	case stderrors.Is(err, mongo.ErrNoDocuments):
		respond.Error(w, apperr.NotFound(resource), "")
		return
	case stderrors.Is(err, context.DeadlineExceeded):
		l.LogServerError(w, r, resource+": operation timed out", err, "The request timed out. Try again.")
		return
	}

	var ae *apperr.Error
	if stderrors.As(err, &ae) {
		if ae.Kind == apperr.KindInternal {
			l.log.Error(resource+": internal error", l.fields(r, ae.Err)...)
			respond.Error(w, ae, l.detail(ae.Err))
			return
		}
		l.log.Debug(resource+": request rejected", append(l.fields(r, nil), zap.String("reason", ae.Message))...)
		respond.Error(w, ae, "")
		return
	}
	l.LogServerError(w, r, resource+": unexpected error", err, "")
}
