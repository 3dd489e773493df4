package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every environment-sourced setting. All variables are
// prefixed CONVITE_ and have working defaults except the master password,
// which must be set for the master-admin surface to be usable.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	LogFmt   string

	// MasterPassword is the master-admin shared secret: either the plain
	// password or a bcrypt hash of it.
	MasterPassword string

	// TZOffset is the fixed UTC offset (e.g. "-03:00") applied to
	// timestamps in responses, for display consistency across clients.
	TZOffset string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("CONVITE_PORT", "8080"),
		DBPath:         getEnv("CONVITE_DB_PATH", "convite.db"),
		LogLevel:       getEnv("CONVITE_LOG_LEVEL", "info"),
		LogFmt:         getEnv("CONVITE_LOG_FORMAT", "text"),
		MasterPassword: getEnv("CONVITE_MASTER_PASSWORD", ""),
		TZOffset:       getEnv("CONVITE_TZ_OFFSET", "-03:00"),
	}
}

// Location converts the configured offset into a fixed time.Location.
// Unparseable offsets fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := parseOffset(c.TZOffset)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseOffset(offset string) (*time.Location, error) {
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') || offset[3] != ':' {
		return nil, fmt.Errorf("malformed offset %q", offset)
	}
	hours, err := strconv.Atoi(offset[1:3])
	if err != nil {
		return nil, fmt.Errorf("malformed offset %q", offset)
	}
	minutes, err := strconv.Atoi(offset[4:6])
	if err != nil {
		return nil, fmt.Errorf("malformed offset %q", offset)
	}

	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+offset, seconds), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
