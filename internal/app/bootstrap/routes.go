// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"strings"

	areasfeature "github.com/dalemusser/estatehub/internal/app/features/areas"
	auditlogfeature "github.com/dalemusser/estatehub/internal/app/features/auditlog"
	authfeature "github.com/dalemusser/estatehub/internal/app/features/authapi"
	contactsfeature "github.com/dalemusser/estatehub/internal/app/features/contacts"
	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/estatehub/internal/app/features/health"
	propertiesfeature "github.com/dalemusser/estatehub/internal/app/features/properties"
	sliderfeature "github.com/dalemusser/estatehub/internal/app/features/slider"
	uploadsfeature "github.com/dalemusser/estatehub/internal/app/features/uploads"
	"github.com/dalemusser/estatehub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. EstateHub builds the shared services
// (authenticator, storage, audit log, rate limiters), applies the global
// middleware, and mounts one router per REST resource.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc, err := newServices(context.Background(), coreCfg, appCfg, deps, logger)
	if err != nil {
		logger.Error("service init failed", zap.Error(err))
		return nil, err
	}
	db := deps.EstateHubMongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(svc.proxies.Middleware)
	r.Use(reqlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.EstateHubMongoClient, coreCfg.Env == "dev", logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded files, when stored on local disk
	if appCfg.StorageType == "local" && strings.HasPrefix(appCfg.StorageLocalURL, "/") {
		prefix := strings.TrimRight(appCfg.StorageLocalURL, "/")
		r.Handle(prefix+"/*", fileserver.Handler(prefix, appCfg.StorageLocalPath))
	}

	authHandler := authfeature.NewHandler(svc.auth, svc.loginLimiter, svc.audit, svc.errLog, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Catalog
	propertiesHandler := propertiesfeature.NewHandler(db, svc.auth, svc.audit, svc.errLog, logger)
	r.Mount("/properties", propertiesfeature.Routes(propertiesHandler))

	areasHandler := areasfeature.NewHandler(db, svc.auth, svc.audit, svc.errLog, logger)
	r.Mount("/areas", areasfeature.Routes(areasHandler))
	r.Mount("/societies", areasfeature.SocietyRoutes(areasHandler))

	sliderHandler := sliderfeature.NewHandler(db, svc.auth, svc.store, svc.audit, svc.errLog, logger)
	r.Mount("/slider-images", sliderfeature.Routes(sliderHandler))

	// Leads
	contactsHandler := contactsfeature.NewHandler(db, svc.auth, svc.contactLimiter, svc.audit, svc.errLog, logger)
	r.Mount("/contacts", contactsfeature.Routes(contactsHandler))

	// Back office
	uploadsHandler := uploadsfeature.NewHandler(svc.store, appCfg.UploadMaxBytes, svc.auth, svc.audit, svc.errLog, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler))

	auditHandler := auditlogfeature.NewHandler(db, svc.auth, svc.errLog, logger)
	r.Mount("/audit-events", auditlogfeature.Routes(auditHandler))

	return r, nil
}
