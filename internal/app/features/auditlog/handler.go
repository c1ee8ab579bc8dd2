// internal/app/features/auditlog/handler.go
package auditlog

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin view of the audit log.
type Handler struct {
	DB     *mongo.Database
	Auth   *auth.Authenticator
	Log    *zap.Logger
	ErrLog *errorsfeature.ErrorLogger
}

// NewHandler constructs an audit log feature handler bound to
// the given Mongo database and logger.
func NewHandler(db *mongo.Database, a *auth.Authenticator, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Auth:   a,
		Log:    logger,
		ErrLog: errLog,
	}
}
