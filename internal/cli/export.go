package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/store"
)

var (
	exportFormat  string
	exportOut     string
	exportHistory bool
	exportEncrypt bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked data as JSON or CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json|csv)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportHistory, "history", false, "include check-in history")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "encrypt the JSON export with a password")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	opts := store.ExportOptions{
		Format:         store.ExportFormat(exportFormat),
		IncludeHistory: exportHistory,
		Encrypt:        exportEncrypt,
	}
	if exportEncrypt {
		pw, err := GetPassword(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		opts.Password = pw
		defer common.WipeByteArray(pw)
	}

	out, err := app.state.Export(opts)
	if err != nil {
		return err
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, []byte(out), 0o600); err != nil {
			return err
		}
		cmd.Printf("Exported to %s\n", exportOut)
		return nil
	}
	cmd.Println(out)
	return nil
}
