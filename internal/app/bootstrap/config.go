// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/auditlog"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EstateHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: ESTATEHUB_MONGO_URI, ESTATEHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "estatehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Admin identity
	{Name: "admin_username", Default: "admin", Desc: "Back-office username"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash of the back-office password"},
	{Name: "admin_password", Default: "", Desc: "Plain back-office password (dev only; hashed at startup)"},

	// Tokens
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HS256 signing secret (at least 32 bytes in production)"},
	{Name: "jwt_issuer", Default: "estatehub", Desc: "Token issuer claim"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Token lifetime (e.g., 24h, 90m)"},

	{Name: "cors_allowed_origins", Default: "http://localhost:3000,http://localhost:5173", Desc: "Comma-separated browser origins allowed to call the API"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs or CIDRs whose X-Forwarded-For is believed; empty trusts none"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "", Desc: "S3 key prefix"},
	{Name: "storage_public_url", Default: "", Desc: "Public URL objects are served from (CDN); defaults to the bucket endpoint"},

	{Name: "upload_max_bytes", Default: 5 << 20, Desc: "Largest accepted image upload in bytes"},

	// Rate limits (per client IP per minute)
	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts per IP per minute"},
	{Name: "contact_rate_limit", Default: 5, Desc: "Contact form submissions per IP per minute"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "0", Desc: "Delete audit events older than this (e.g., 2160h); 0 keeps them"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ESTATEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ESTATEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AdminUsername:     strings.TrimSpace(appValues.String("admin_username")),
		AdminPasswordHash: strings.TrimSpace(appValues.String("admin_password_hash")),
		AdminPassword:     appValues.String("admin_password"),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		JWTTTL:    appValues.Duration("jwt_ttl", auth.DefaultTTL),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		TrustedProxies:     splitList(appValues.String("trusted_proxies")),

		// File storage
		StorageType:      strings.ToLower(strings.TrimSpace(appValues.String("storage_type"))),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3
		StorageS3Region:  appValues.String("storage_s3_region"),
		StorageS3Bucket:  appValues.String("storage_s3_bucket"),
		StorageS3Prefix:  appValues.String("storage_s3_prefix"),
		StoragePublicURL: appValues.String("storage_public_url"),

		UploadMaxBytes: int64(appValues.Int("upload_max_bytes")),

		LoginRateLimit:   appValues.Int("login_rate_limit"),
		ContactRateLimit: appValues.Int("contact_rate_limit"),

		// Audit logging
		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		AuditRetention: appValues.Duration("audit_retention", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Problems are collected so one run reports all of them.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validate(coreCfg.Env, appCfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}

func validate(env string, appCfg AppConfig) error {
	var problems []error

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		problems = append(problems, fmt.Errorf("invalid MongoDB URI: %w", err))
	}
	if appCfg.MongoDatabase == "" {
		problems = append(problems, errors.New("mongo_database is required"))
	}

	if appCfg.AdminUsername == "" {
		problems = append(problems, errors.New("admin_username is required"))
	}
	if appCfg.AdminPasswordHash == "" {
		if env != "dev" {
			problems = append(problems, errors.New("admin_password_hash is required outside dev"))
		} else if appCfg.AdminPassword == "" {
			problems = append(problems, errors.New("admin_password_hash or admin_password is required"))
		}
	}

	if appCfg.JWTSecret == "" {
		problems = append(problems, errors.New("jwt_secret is required"))
	} else if env != "dev" && len(appCfg.JWTSecret) < auth.MinSecretLength {
		problems = append(problems, fmt.Errorf("jwt_secret must be at least %d bytes outside dev", auth.MinSecretLength))
	}
	if appCfg.JWTTTL <= 0 || appCfg.JWTTTL > 30*24*time.Hour {
		problems = append(problems, errors.New("jwt_ttl must be between 1s and 720h"))
	}

	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		problems = append(problems, fmt.Errorf("trusted_proxies: %w", err))
	}

	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" || appCfg.StorageLocalURL == "" {
			problems = append(problems, errors.New("storage_local_path and storage_local_url are required for local storage"))
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			problems = append(problems, errors.New("storage_s3_bucket and storage_s3_region are required for s3 storage"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown storage_type %q (want local or s3)", appCfg.StorageType))
	}

	if appCfg.UploadMaxBytes <= 0 {
		problems = append(problems, errors.New("upload_max_bytes must be positive"))
	}

	for name, dest := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch dest {
		case auditlog.DestAll, auditlog.DestDB, auditlog.DestLog, auditlog.DestOff:
		default:
			problems = append(problems, fmt.Errorf("%s must be all, db, log or off (got %q)", name, dest))
		}
	}

	if appCfg.AuditRetention < 0 {
		problems = append(problems, errors.New("audit_retention must not be negative"))
	} else if appCfg.AuditRetention > 0 && appCfg.AuditRetention < 24*time.Hour {
		problems = append(problems, errors.New("audit_retention must be at least 24h when set"))
	}

	return errors.Join(problems...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
