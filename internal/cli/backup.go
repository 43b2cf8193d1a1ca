package cli

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List migration backups",
	RunE:  runBackupsList,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a migration backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tracked data",
	RunE:  runClear,
}

func init() {
	backupsCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(clearCmd)
}

func runBackupsList(cmd *cobra.Command, args []string) error {
	backups, err := app.store.Backups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		cmd.Println("No backups.")
		return nil
	}

	table := uitable.New()
	table.AddRow("ID", "CREATED", "FROM VERSION")
	for _, b := range backups {
		table.AddRow(b.ID, b.CreatedAt, b.FromVersion)
	}
	cmd.Println(table.String())
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	if err := app.store.RestoreBackup(args[0]); err != nil {
		return err
	}
	cmd.Printf("Restored backup %s\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !confirm(cmd, "Delete ALL sitekeeper data?") {
		cmd.Println("Aborted.")
		return nil
	}
	app.store.ClearAll()
	cmd.Println("All data cleared.")
	return nil
}
