package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the UI theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.Println(app.store.GetTheme())
		return nil
	}
	if !app.state.SetTheme(args[0]) {
		return fmt.Errorf("could not persist theme %q", args[0])
	}
	cmd.Printf("Theme set to %s\n", args[0])
	return nil
}
