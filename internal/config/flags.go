package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/sitekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d, --data-dir string   data directory for on-disk storage
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with cobra's own flag handling.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "--data-dir"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
