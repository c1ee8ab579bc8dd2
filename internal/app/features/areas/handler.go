// internal/app/features/areas/handler.go
package areas

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the area aggregate: areas, their sub-areas and the
// societies inside each sub-area. The embedded tree is always written
// through the area store so a single document update covers each change.
type Handler struct {
	DB       *mongo.Database
	Auth     *auth.Authenticator
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs an areas Handler.
func NewHandler(db *mongo.Database, a *auth.Authenticator, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Auth:     a,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
