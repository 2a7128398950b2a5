// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as uint64, or the default value if not set
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the ZZCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides,
// grouped as numeric, duration, string and boolean.
var envOverrides = []envOverride{
	// Numeric overrides
	{"BASE", []string{"base"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Base = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MemoryLimit = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"FILE", []string{"f", "file"}, func(c *AppConfig, v string) {
		c.File = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) {
		c.Theme = v
	}},

	// Boolean overrides
	{"HEX", []string{"x", "hex"}, func(c *AppConfig, v string) {
		c.Hex = parseBoolEnv(v, c.Hex)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with ZZCALC_):
//   - BASE, WORKERS, MEMORY_LIMIT, TIMEOUT, FILE, METRICS_ADDR, THEME,
//     HEX, VERBOSE, QUIET, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
