// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/store/audit"
	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		c := timeouts.Current()
		logger.Info("operation timeouts overridden from environment",
			zap.Int("overrides", n),
			zap.Duration("ping", c.Ping),
			zap.Duration("short", c.Short),
			zap.Duration("medium", c.Medium),
			zap.Duration("long", c.Long),
			zap.Duration("batch", c.Batch))
	}

	if appCfg.AdminPasswordHash == "" && coreCfg.Env == "dev" {
		logger.Warn("admin_password_hash is not set; hashing admin_password at startup (dev only)")
	}
	if appCfg.StorageType == "local" && appCfg.StorageLocalURL != "" && appCfg.StorageLocalURL[0] != '/' {
		logger.Warn("storage_local_url is not a path; uploads will not be served by this process",
			zap.String("storage_local_url", appCfg.StorageLocalURL))
	}

	if deps.AuditRetention != nil {
		deps.AuditRetention.Start()
	}
	return nil
}

// services are the shared collaborators every feature handler is built from.
type services struct {
	auth           *auth.Authenticator
	store          storage.Store
	audit          *auditlog.Logger
	errLog         *errorsfeature.ErrorLogger
	loginLimiter   *ratelimit.LoginLimiter
	contactLimiter *ratelimit.Limiter
	proxies        *ratelimit.Proxies
}

func newServices(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*services, error) {
	dev := coreCfg.Env == "dev"

	hash, err := adminPasswordHash(dev, appCfg)
	if err != nil {
		return nil, err
	}
	authn, err := auth.New(auth.Config{
		Username:     appCfg.AdminUsername,
		PasswordHash: hash,
		Secret:       appCfg.JWTSecret,
		Issuer:       appCfg.JWTIssuer,
		TTL:          appCfg.JWTTTL,
	}, logger)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, appCfg)
	if err != nil {
		return nil, err
	}
	proxies, err := ratelimit.ParseProxies(appCfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	s := &services{
		auth:   authn,
		store:  store,
		errLog: errorsfeature.NewErrorLogger(logger, dev),
		audit: auditlog.New(audit.New(deps.EstateHubMongoDatabase), logger, auditlog.Config{
			Auth:  appCfg.AuditLogAuth,
			Admin: appCfg.AuditLogAdmin,
		}),
		loginLimiter: ratelimit.NewLoginLimiter(appCfg.LoginRateLimit),
		proxies:      proxies,
	}
	if appCfg.ContactRateLimit > 0 {
		s.contactLimiter = ratelimit.New(appCfg.ContactRateLimit, time.Minute)
	}
	return s, nil
}

// adminPasswordHash returns the configured bcrypt hash, or in dev a hash of
// the plain admin_password.
func adminPasswordHash(dev bool, appCfg AppConfig) (string, error) {
	if appCfg.AdminPasswordHash != "" {
		return appCfg.AdminPasswordHash, nil
	}
	if !dev {
		return "", errors.New("admin_password_hash is required outside dev")
	}
	if appCfg.AdminPassword == "" {
		return "", errors.New("admin_password_hash or admin_password is required")
	}
	hash, err := auth.HashPassword(appCfg.AdminPassword)
	if err != nil {
		return "", fmt.Errorf("hash admin_password: %w", err)
	}
	return hash, nil
}

func newStore(ctx context.Context, appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	case "s3":
		ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()
		return storage.NewS3(ctx, storage.S3Config{
			Region:  appCfg.StorageS3Region,
			Bucket:  appCfg.StorageS3Bucket,
			Prefix:  appCfg.StorageS3Prefix,
			BaseURL: appCfg.StoragePublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
	}
}
