// Package config holds runtime settings for the sitekeeper CLI and state
// engine. Values are layered: defaults, then an optional JSON file, then
// command-line flags, with later sources taking precedence.
package config

import (
	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
	"github.com/dmitrijs2005/sitekeeper/internal/migrate"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

// Config holds runtime settings.
//
// Fields:
//   - DataDir: base directory for on-disk storage; empty means "resolve via
//     environment/config file, falling back to ~/.sitekeeper".
//   - HistoryCap: per-credential check-in history bound.
//   - Iterations: PBKDF2 iteration count for export encryption.
//   - BackupLimit: retained pre-migration snapshots.
type Config struct {
	DataDir     string
	HistoryCap  int
	Iterations  int
	BackupLimit int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ""
	c.HistoryCap = models.DefaultHistoryCap
	c.Iterations = cryptox.DefaultIterations
	c.BackupLimit = migrate.DefaultBackupLimit
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
