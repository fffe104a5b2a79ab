// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/pathlabhq/pathlab/internal/app/features/auditlog"
	authfeature "github.com/pathlabhq/pathlab/internal/app/features/auth"
	apierrors "github.com/pathlabhq/pathlab/internal/app/features/errors"
	healthfeature "github.com/pathlabhq/pathlab/internal/app/features/health"
	labsfeature "github.com/pathlabhq/pathlab/internal/app/features/labs"
	reportsfeature "github.com/pathlabhq/pathlab/internal/app/features/reports"
	usersfeature "github.com/pathlabhq/pathlab/internal/app/features/users"
	"github.com/pathlabhq/pathlab/internal/app/store/audit"
	sysauth "github.com/pathlabhq/pathlab/internal/app/system/auth"
	"github.com/pathlabhq/pathlab/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// PathLab creates the JWT token manager, applies the bearer-token
// middleware, and mounts feature routers for all API areas: auth, labs,
// reports, users, and the audit trail.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := sysauth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Audit logger writes to Mongo and mirrors to zap per config.
	auditLog := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Create error logger for handlers.
	errLog := apierrors.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token into a context user.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, auditLog, errLog, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Lab management
	labsHandler := labsfeature.NewHandler(deps.MongoDatabase, auditLog, errLog, logger)
	r.Mount("/labs", labsfeature.Routes(labsHandler))

	// Reports
	reportsHandler := reportsfeature.NewHandler(deps.MongoDatabase, auditLog, errLog, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler))

	// Staff management
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, auditLog, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Audit trail
	auditHandler := auditlogfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler))

	return r, nil
}
