package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sitekeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// are treated as "not set" and leave the runtime Config untouched.
type JsonConfig struct {
	DataDir     string `json:"data_dir"`
	HistoryCap  int    `json:"history_cap"`
	Iterations  int    `json:"iterations"`
	BackupLimit int    `json:"backup_limit"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given by the -c or -config flag. No flag, no JSON. Read or unmarshal
// errors panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.HistoryCap > 0 {
		cfg.HistoryCap = jc.HistoryCap
	}
	if jc.Iterations > 0 {
		cfg.Iterations = jc.Iterations
	}
	if jc.BackupLimit > 0 {
		cfg.BackupLimit = jc.BackupLimit
	}
}
