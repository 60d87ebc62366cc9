package main

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/neurhq/neur"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file >
// defaults. It must be called after cobra parses flags (in PreRunE or
// RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = "neur.toml"
	}

	// A missing default neur.toml is fine; a path the user named must exist.
	if err := loadConfigFromPath(configPath, cmd.Flags().Changed("config")); err != nil {
		return err
	}

	// CLI flags take the highest precedence; posflag only overrides
	// keys whose flags were explicitly set.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string, required bool) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	} else if required {
		return fmt.Errorf("loading config file %s: %w", configPath, err)
	}

	// Environment variables (NEUR_* prefix)
	if err := k.Load(env.Provider("NEUR_", ".", func(s string) string {
		// NEUR_SOURCE -> source, NEUR_MINIFY -> minify
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "NEUR_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() neur.Config {
	return neur.Config{
		Source:  getStringWithFallback("source", neur.DefaultSource),
		Output:  getStringWithFallback("output", neur.DefaultOutput),
		Minify:  getBoolWithFallback("minify", false),
		Workers: getIntWithFallback("workers", 0),
	}
}

// getStringWithFallback returns the configured value or the default.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the configured value or the default.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getIntWithFallback returns the configured value or the default.
func getIntWithFallback(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}
