// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	userstore "github.com/pathlabhq/pathlab/internal/app/store/users"
	"github.com/pathlabhq/pathlab/internal/app/system/authz"
	"github.com/pathlabhq/pathlab/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureSuperAdmin guarantees a super-admin account exists for the given
// email. An existing user is promoted; a missing user is created when a
// password is configured. Promotion clears lab_id since super-admins do
// not belong to any lab.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == authz.RoleSuperAdmin {
			return nil
		}
		_, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
			bson.M{"_id": u.ID},
			bson.M{
				"$set":   bson.M{"role": authz.RoleSuperAdmin},
				"$unset": bson.M{"lab_id": ""},
			})
		if err != nil {
			return fmt.Errorf("promote super-admin: %w", err)
		}
		logger.Info("promoted existing user to super-admin",
			zap.String("email", email))
		return nil

	case err == mongo.ErrNoDocuments:
		if password == "" {
			logger.Warn("superadmin_email set but user does not exist and no superadmin_password configured; skipping",
				zap.String("email", email))
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash super-admin password: %w", err)
		}
		created, err := users.Create(ctx, models.User{
			Name:         "Super Admin",
			Email:        email,
			PasswordHash: string(hash),
			Role:         authz.RoleSuperAdmin,
		})
		if err != nil {
			return fmt.Errorf("create super-admin: %w", err)
		}
		logger.Info("created super-admin user",
			zap.String("email", email),
			zap.String("id", created.ID.Hex()))
		return nil

	default:
		return fmt.Errorf("lookup super-admin: %w", err)
	}
}
