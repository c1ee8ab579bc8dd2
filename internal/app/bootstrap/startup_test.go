package bootstrap

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig(t *testing.T) AppConfig {
	return AppConfig{
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabase:     "estatehub_test",
		AdminUsername:     "admin",
		AdminPasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z2nY3J5rXUj7jz5GZ0p8m1aK",
		JWTSecret:         strings.Repeat("s", auth.MinSecretLength),
		JWTIssuer:         "estatehub",
		JWTTTL:            24 * time.Hour,
		StorageType:       "local",
		StorageLocalPath:  t.TempDir(),
		StorageLocalURL:   "/files",
		UploadMaxBytes:    5 << 20,
		LoginRateLimit:    10,
		ContactRateLimit:  5,
		AuditLogAuth:      "all",
		AuditLogAdmin:     "log",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid prod", env: "prod", mutate: func(*AppConfig) {}},
		{name: "dev plain password", env: "dev", mutate: func(c *AppConfig) { c.AdminPasswordHash = ""; c.AdminPassword = "pw" }},
		{name: "bad mongo uri", env: "prod", mutate: func(c *AppConfig) { c.MongoURI = "localhost:27017" }, wantErr: "MongoDB URI"},
		{name: "missing username", env: "prod", mutate: func(c *AppConfig) { c.AdminUsername = "" }, wantErr: "admin_username"},
		{name: "plain password in prod", env: "prod", mutate: func(c *AppConfig) { c.AdminPasswordHash = ""; c.AdminPassword = "pw" }, wantErr: "admin_password_hash is required outside dev"},
		{name: "no password in dev", env: "dev", mutate: func(c *AppConfig) { c.AdminPasswordHash = "" }, wantErr: "admin_password_hash or admin_password"},
		{name: "short secret in prod", env: "prod", mutate: func(c *AppConfig) { c.JWTSecret = "short" }, wantErr: "jwt_secret must be at least"},
		{name: "short secret in dev", env: "dev", mutate: func(c *AppConfig) { c.JWTSecret = "short" }},
		{name: "bad ttl", env: "prod", mutate: func(c *AppConfig) { c.JWTTTL = 0 }, wantErr: "jwt_ttl"},
		{name: "unknown storage", env: "prod", mutate: func(c *AppConfig) { c.StorageType = "ftp" }, wantErr: "unknown storage_type"},
		{name: "s3 without bucket", env: "prod", mutate: func(c *AppConfig) { c.StorageType = "s3"; c.StorageS3Region = "us-east-1" }, wantErr: "storage_s3_bucket"},
		{name: "bad audit destination", env: "prod", mutate: func(c *AppConfig) { c.AuditLogAdmin = "syslog" }, wantErr: "audit_log_admin"},
		{name: "audit retention", env: "prod", mutate: func(c *AppConfig) { c.AuditRetention = 90 * 24 * time.Hour }},
		{name: "short audit retention", env: "prod", mutate: func(c *AppConfig) { c.AuditRetention = time.Hour }, wantErr: "audit_retention"},
		{name: "trusted proxies", env: "prod", mutate: func(c *AppConfig) { c.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.1"} }},
		{name: "bad trusted proxy", env: "prod", mutate: func(c *AppConfig) { c.TrustedProxies = []string{"lb.internal"} }, wantErr: "trusted_proxies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := validate(tt.env, cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig(t)
	cfg.AdminUsername = ""
	cfg.StorageType = "ftp"
	err := validate("prod", cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"admin_username", "storage_type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestAdminPasswordHash(t *testing.T) {
	cfg := validConfig(t)
	got, err := adminPasswordHash(false, cfg)
	if err != nil || got != cfg.AdminPasswordHash {
		t.Fatalf("configured hash: got %q, %v", got, err)
	}

	cfg.AdminPasswordHash = ""
	cfg.AdminPassword = "open-sesame"
	if _, err := adminPasswordHash(false, cfg); err == nil {
		t.Error("expected plain password to be refused outside dev")
	}
	hash, err := adminPasswordHash(true, cfg)
	if err != nil {
		t.Fatalf("dev hash: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("open-sesame")) != nil {
		t.Error("dev hash does not match admin_password")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test , ,http://b.test,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}

func TestBuildHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coreCfg := &config.CoreConfig{Env: "dev"}
	appCfg := validConfig(t)
	appCfg.AdminPasswordHash = ""
	appCfg.AdminPassword = "open-sesame"
	appCfg.CORSAllowedOrigins = []string{"http://admin.test"}
	deps := DBDeps{EstateHubMongoClient: db.Client(), EstateHubMongoDatabase: db}

	if err := EnsureSchema(ctx, coreCfg, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := Startup(ctx, coreCfg, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	h, err := BuildHandler(coreCfg, appCfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	t.Run("health", func(t *testing.T) {
		testutil.AssertStatus(t, testutil.Serve(h, testutil.NewRequest("GET", "/health")), http.StatusOK)
	})

	t.Run("public catalog", func(t *testing.T) {
		for _, p := range []string{"/properties", "/areas", "/slider-images"} {
			if rec := testutil.Serve(h, testutil.NewRequest("GET", p)); rec.Code != http.StatusOK {
				t.Errorf("GET %s = %d", p, rec.Code)
			}
		}
	})

	t.Run("admin routes need a token", func(t *testing.T) {
		for _, p := range []string{"/contacts", "/audit-events"} {
			if rec := testutil.Serve(h, testutil.NewRequest("GET", p)); rec.Code != http.StatusUnauthorized {
				t.Errorf("GET %s = %d, want 401", p, rec.Code)
			}
		}
	})

	t.Run("login with dev password", func(t *testing.T) {
		rec := testutil.Serve(h, testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{"username": "admin", "password": "open-sesame"}))
		testutil.AssertStatus(t, rec, http.StatusOK)
		var tok auth.Token
		testutil.DecodeEnvelope(t, rec, &tok)
		if tok.Value == "" {
			t.Fatal("expected a token")
		}
		rec = testutil.Serve(h, testutil.WithBearer(testutil.NewRequest("GET", "/contacts"), tok.Value))
		testutil.AssertStatus(t, rec, http.StatusOK)
	})

	t.Run("unknown route is a JSON 404", func(t *testing.T) {
		rec := testutil.Serve(h, testutil.NewRequest("GET", "/nope"))
		testutil.AssertStatus(t, rec, http.StatusNotFound)
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := testutil.NewRequest("OPTIONS", "/properties")
		req.Header.Set("Origin", "http://admin.test")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := testutil.Serve(h, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.test" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("local files are served", func(t *testing.T) {
		full := filepath.Join(appCfg.StorageLocalPath, "images", "a.txt")
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}
		rec := testutil.Serve(h, testutil.NewRequest("GET", "/files/images/a.txt"))
		testutil.AssertStatus(t, rec, http.StatusOK)
		if rec.Body.String() != "hello" {
			t.Errorf("body = %q", rec.Body.String())
		}
	})
}
