// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	DestAll = "all" // MongoDB + zap
	DestDB  = "db"
	DestLog = "log"
	DestOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login, logout and rate-limited logins.
	Auth string
	// Admin controls logging for admin mutations (create/update/delete/reorder, uploads).
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and/or zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.ResourceID != "" {
		fields = append(fields, zap.String("resource_id", event.ResourceID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event according to the category's destination.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = DestAll
	}
	if setting == DestOff {
		return
	}

	if setting == DestAll || setting == DestLog {
		l.logToZap(event)
	}
	if (setting == DestAll || setting == DestDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		RequestID: middleware.GetReqID(r.Context()),
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful admin login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, username string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.Actor = username
	e.Success = true
	l.Log(ctx, e)
}

// LoginFailed logs a rejected login. The attempted username is recorded
// but the failure reason does not say which factor was wrong.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedUsername string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailed)
	e.FailureReason = "invalid credentials"
	e.Details = map[string]string{"attempted_username": attemptedUsername}
	l.Log(ctx, e)
}

// LoginRateLimited logs a login refused by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedUsername string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit)
	e.FailureReason = "rate limit exceeded"
	e.Details = map[string]string{"attempted_username": attemptedUsername}
	l.Log(ctx, e)
}

// Logout logs an advisory logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, username string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLogout)
	e.Actor = username
	e.Success = true
	l.Log(ctx, e)
}

// --- Admin Events ---

// Admin logs a successful admin mutation on resourceID. The actor is the
// identity attached to r by the auth middleware.
func (l *Logger) Admin(ctx context.Context, r *http.Request, eventType, resourceID string, details map[string]string) {
	e := fromRequest(r, audit.CategoryAdmin, eventType)
	if id, ok := auth.CurrentIdentity(r); ok {
		e.Actor = id.Username
	}
	e.ResourceID = resourceID
	e.Success = true
	e.Details = details
	l.Log(ctx, e)
}
