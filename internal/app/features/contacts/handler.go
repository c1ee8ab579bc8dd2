// internal/app/features/contacts/handler.go
package contacts

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the contact form intake and the admin lead inbox.
type Handler struct {
	DB       *mongo.Database
	Auth     *auth.Authenticator
	Limiter  *ratelimit.Limiter // per-IP limit for public submissions; nil disables
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a contacts Handler.
func NewHandler(db *mongo.Database, a *auth.Authenticator, limiter *ratelimit.Limiter, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Auth:     a,
		Limiter:  limiter,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
