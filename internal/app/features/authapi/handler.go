// internal/app/features/authapi/handler.go
package authapi

import (
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler serves login, token verification and logout for the admin.
type Handler struct {
	Auth     *auth.Authenticator
	Limiter  *ratelimit.LoginLimiter
	AuditLog *auditlog.Logger
	ErrLog   *errorsfeature.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs an auth Handler. A nil limiter disables rate limiting.
func NewHandler(a *auth.Authenticator, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     a,
		Limiter:  limiter,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// userView is the identity shape returned to clients.
type userView struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issuedAt,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

func viewOf(id auth.Identity) userView {
	v := userView{Username: id.Username, Role: id.Role}
	if !id.IssuedAt.IsZero() {
		v.IssuedAt = id.IssuedAt.Unix()
	}
	if !id.ExpiresAt.IsZero() {
		v.ExpiresAt = id.ExpiresAt.Unix()
	}
	return v
}
