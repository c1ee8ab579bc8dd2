// internal/app/features/authapi/login.go
package authapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginInput struct {
	Username string `json:"username" validate:"required,max=100" label:"Username"`
	Password string `json:"password" validate:"required,max=200" label:"Password"`
}

type loginResult struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userView  `json:"user"`
}

// HandleLogin handles POST /auth/login.
//
// 200 {"success":true,"message":"Login successful","data":{"token":"…","expiresIn":86400,…}}
// 401 {"success":false,"message":"Invalid credentials"} for a wrong username
// or a wrong password alike.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if aerr := respond.Decode(r, &in); aerr != nil {
		respond.Error(w, aerr, "")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, res.AppErr(), "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Username); !ok {
			h.Log.Warn("login rate limited", zap.String("username", in.Username))
			h.AuditLog.LoginRateLimited(ctx, r, in.Username)
			w.Header().Set("Retry-After", "60")
			respond.Error(w, apperr.TooManyRequests(reason), "")
			return
		}
	}

	tok, id, err := h.Auth.Login(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Log.Info("login failed", zap.String("username", in.Username))
			h.AuditLog.LoginFailed(ctx, r, in.Username)
			respond.Error(w, auth.ErrInvalidCredentials, "")
			return
		}
		h.ErrLog.Respond(w, r, "login", err)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetUsername(in.Username)
	}
	h.AuditLog.LoginSuccess(ctx, r, id.Username)
	h.Log.Info("admin logged in", zap.String("username", id.Username))

	respond.Message(w, "Login successful", loginResult{
		Token:     tok.Value,
		ExpiresIn: tok.ExpiresIn,
		ExpiresAt: tok.ExpiresAt,
		User:      viewOf(id),
	})
}
