// internal/app/system/timeouts/timeouts.go

// Package timeouts provides the timeout values handlers use with
// context.WithTimeout for backend calls.
//
// Guidelines:
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries and simple writes
//   - Long: multi-collection flows (group assignment, invite redemption)
package timeouts

import (
	"os"
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for flows that touch multiple collections.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// ConfigureFromEnv overrides timeouts from TIMEOUT_PING, TIMEOUT_SHORT,
// TIMEOUT_MEDIUM and TIMEOUT_LONG (duration strings, e.g. "500ms", "15s").
// Unset or invalid values keep their defaults. Returns how many values were
// applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	applied := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_SHORT", &short},
		{"TIMEOUT_MEDIUM", &medium},
		{"TIMEOUT_LONG", &long},
	} {
		if v := os.Getenv(e.name); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*e.dst = d
				applied++
			}
		}
	}
	return applied
}

// Reset restores defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}
