// internal/app/features/properties/handler.go
package properties

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the property catalog: public reads and admin writes.
//
// It is constructed once at startup in bootstrap, using the
// shared Mongo database handle and logger.
type Handler struct {
	DB       *mongo.Database
	Auth     *auth.Authenticator
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a properties Handler.
func NewHandler(db *mongo.Database, a *auth.Authenticator, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Auth:     a,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
