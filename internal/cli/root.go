package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/config"
)

var app *App

var rootCmd = &cobra.Command{
	Use:           "sitekeeper",
	Short:         "Track sites, credentials and daily check-ins",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if app != nil {
			return nil
		}
		var err error
		app, err = NewApp(config.LoadConfig())
		return err
	},
}

func init() {
	// registered here so cobra accepts and documents it; the value is
	// consumed by the config layer, which parses argv itself
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "data directory for on-disk storage")
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
