// internal/app/features/uploads/handler.go
package uploads

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// DefaultMaxBytes caps an image upload when no limit is configured.
const DefaultMaxBytes int64 = 5 << 20

// Handler stores admin image uploads for properties and the slider.
type Handler struct {
	Storage  storage.Store
	MaxBytes int64
	Auth     *auth.Authenticator
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs an uploads Handler. maxBytes <= 0 selects DefaultMaxBytes.
func NewHandler(store storage.Store, maxBytes int64, a *auth.Authenticator, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{
		Storage:  store,
		MaxBytes: maxBytes,
		Auth:     a,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}
