// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/instephq/instep/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs after the database is connected and the schema is ensured,
// before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if applied := timeouts.ConfigureFromEnv(); applied > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", applied))
	}

	logger.Info("instep starting",
		zap.String("env", coreCfg.Env),
		zap.Duration("invite_expiry", appCfg.InviteExpiry),
		zap.Int("group_scan_limit", appCfg.GroupScanLimit))
	return nil
}
