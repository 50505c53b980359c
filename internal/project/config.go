// Package project resolves a working directory into a project root, loads
// its layered configuration, and provides the time/identity services other
// packages need injected rather than read directly from the environment.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved, typed view of config.json plus its defaults.
type Config struct {
	v *viper.Viper
}

// Load reads a single config.json: the CONFIG_FILE override if set, else the
// project root's .cleo/config.json if it exists, else the user config
// directory's cleo/config.json. The files are not merged; keys missing from
// the file that was read fall back to built-in defaults. Environment variables bound with
// the CLEO_ prefix take precedence over file values, matching viper's normal
// env-over-file behaviour.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	v.SetEnvPrefix("CLEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	configured := false
	if override := os.Getenv("CONFIG_FILE"); override != "" {
		v.SetConfigFile(override)
		configured = true
	}
	if !configured && root != "" {
		path := filepath.Join(root, ".cleo", "config.json")
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			configured = true
		}
	}
	if !configured {
		if dir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(dir, "cleo", "config.json")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configured = true
			}
		}
	}

	if configured {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hierarchy.autoCompleteParent", true)
	v.SetDefault("hierarchy.autoCompleteMode", "auto")
	v.SetDefault("hierarchy.maxSiblings", 20)
	v.SetDefault("hierarchy.maxDepth", 3)

	v.SetDefault("validation.requireDescription", false)
	v.SetDefault("validation.phaseValidation.warnPhaseContext", true)
	v.SetDefault("validation.phaseValidation.enforcePhaseOrder", false)

	v.SetDefault("verification.requireForParentAutoComplete", false)
	v.SetDefault("verification.gates", []string{"implemented"})

	v.SetDefault("multiSession.enabled", true)
	v.SetDefault("multiSession.allowScopeOverlap", false)
	v.SetDefault("session.requireSession", false)

	v.SetDefault("duplicate.windowSeconds", 60)
	v.SetDefault("archive.autoAfterDays", 0)
	v.SetDefault("lock.timeoutSeconds", 5)
	v.SetDefault("output.format", "")
}

func (c *Config) AutoCompleteParent() bool  { return c.v.GetBool("hierarchy.autoCompleteParent") }
func (c *Config) AutoCompleteMode() string  { return c.v.GetString("hierarchy.autoCompleteMode") }
func (c *Config) MaxSiblings() int          { return c.v.GetInt("hierarchy.maxSiblings") }
func (c *Config) MaxDepth() int             { return c.v.GetInt("hierarchy.maxDepth") }
func (c *Config) RequireDescription() bool  { return c.v.GetBool("validation.requireDescription") }
func (c *Config) WarnPhaseContext() bool {
	return c.v.GetBool("validation.phaseValidation.warnPhaseContext")
}
func (c *Config) EnforcePhaseOrder() bool {
	return c.v.GetBool("validation.phaseValidation.enforcePhaseOrder")
}
func (c *Config) RequireVerificationForAutoComplete() bool {
	return c.v.GetBool("verification.requireForParentAutoComplete")
}
func (c *Config) VerificationGates() []string { return c.v.GetStringSlice("verification.gates") }
func (c *Config) MultiSessionEnabled() bool   { return c.v.GetBool("multiSession.enabled") }
func (c *Config) AllowScopeOverlap() bool     { return c.v.GetBool("multiSession.allowScopeOverlap") }
func (c *Config) RequireSession() bool        { return c.v.GetBool("session.requireSession") }
func (c *Config) DuplicateWindowSeconds() int { return c.v.GetInt("duplicate.windowSeconds") }
func (c *Config) ArchiveAutoAfterDays() int   { return c.v.GetInt("archive.autoAfterDays") }
func (c *Config) LockTimeoutSeconds() int     { return c.v.GetInt("lock.timeoutSeconds") }
func (c *Config) OutputFormat() string        { return c.v.GetString("output.format") }

// Set overrides a single key, mainly for tests that need a lowered
// maxSiblings or duplicate window without writing a config.json fixture.
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// ChecksumEnabled reports whether checksum verification is enabled, honouring
// the CLAUDE_TODO_VALIDATION_CHECKSUM_ENABLED override which is read directly
// since it does not follow the CLEO_ prefix convention.
func ChecksumEnabled() bool {
	val := os.Getenv("CLAUDE_TODO_VALIDATION_CHECKSUM_ENABLED")
	if val == "" {
		return true
	}
	return val != "0" && !strings.EqualFold(val, "false")
}
