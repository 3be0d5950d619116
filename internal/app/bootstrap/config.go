// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for InStep.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, invite_expiry, etc.
//   - Environment variables: INSTEP_MONGO_URI, INSTEP_INVITE_EXPIRY, etc.
//   - Command-line flags: --mongo_uri, --invite_expiry, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "instep", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Invite exchange
	{Name: "invite_expiry", Default: "168h", Desc: "Invite code lifetime (e.g., 168h for one week)"},

	// Group assignment
	{Name: "group_scan_limit", Default: 5, Desc: "Open groups considered before creating a new one"},

	// Check-in fallback
	{Name: "progress_cache_size", Default: 512, Desc: "Entries held by the in-memory progress fallback cache"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "INSTEP", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		InviteExpiry:      appValues.Duration("invite_expiry", 7*24*time.Hour),
		GroupScanLimit:    appValues.Int("group_scan_limit"),
		ProgressCacheSize: appValues.Int("progress_cache_size"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// InStep validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects nonsensical tunables.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.InviteExpiry <= 0 {
		return fmt.Errorf("invite_expiry must be positive, got %s", appCfg.InviteExpiry)
	}
	if appCfg.GroupScanLimit <= 0 {
		return fmt.Errorf("group_scan_limit must be positive, got %d", appCfg.GroupScanLimit)
	}
	return nil
}
