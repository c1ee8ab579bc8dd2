// internal/app/features/slider/handler.go
package slider

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the home page slider images.
type Handler struct {
	DB       *mongo.Database
	Auth     *auth.Authenticator
	Storage  storage.Store // optional; used to remove uploaded files on delete
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a slider Handler.
func NewHandler(db *mongo.Database, a *auth.Authenticator, store storage.Store, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Auth:     a,
		Storage:  store,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
