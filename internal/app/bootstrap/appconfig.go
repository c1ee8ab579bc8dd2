// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration (ports, TLS, env, log level).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// The single back-office identity
	AdminUsername     string
	AdminPasswordHash string // bcrypt
	AdminPassword     string // plain text, dev only; hashed at startup when no hash is set

	// Bearer tokens
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// Browser origins allowed to call the API (public site and admin panel)
	CORSAllowedOrigins []string

	// Reverse proxies whose forwarding headers name the client IP
	TrustedProxies []string

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region  string
	StorageS3Bucket  string
	StorageS3Prefix  string
	StoragePublicURL string // CDN or bucket URL objects are served from

	UploadMaxBytes int64

	// Requests per minute per client IP
	LoginRateLimit   int
	ContactRateLimit int

	// Audit logging destinations: all, db, log, off
	AuditLogAuth  string
	AuditLogAdmin string

	// Audit events older than this are pruned hourly; 0 keeps them forever
	AuditRetention time.Duration
}
