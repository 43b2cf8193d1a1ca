package storage

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ResolveBasePath decides where DiskStorage keeps its files.
//
// Lookup order: an explicit non-empty override wins; otherwise the
// SITEKEEPER_PATH environment variable or a "path" entry in a .sitekeeper
// config file in the current directory; otherwise ~/.sitekeeper.
func ResolveBasePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	v := viper.New()
	v.SetDefault("path", defaultBasePath())
	v.SetConfigName(".sitekeeper")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SITEKEEPER")
	v.AutomaticEnv()
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return "", err
		}
	}

	return v.GetString("path"), nil
}

func defaultBasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sitekeeper"
	}
	return filepath.Join(home, ".sitekeeper")
}
