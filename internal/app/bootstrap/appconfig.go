// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging
// level, request limits). AppConfig carries everything specific to InStep:
// the MongoDB connection and the tunables of the goal, group and invite
// flows.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Invite exchange
	InviteExpiry time.Duration // How long a freshly minted invite stays redeemable

	// Group assignment
	GroupScanLimit int // How many open groups to consider before creating a new one

	// Check-in fallback
	ProgressCacheSize int // Entries held by the in-memory progress fallback cache
}
