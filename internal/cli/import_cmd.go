package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sites from a JSON export",
	Long: `Import merges sites from a previous export into the current
document. Encrypted exports prompt for the password they were
exported with.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var password []byte
	if cryptox.IsEnvelope(data) {
		password, err = GetPassword(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
	}

	if err := app.state.Import(data, password); err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			return errors.New("wrong password or corrupted export")
		}
		return err
	}
	cmd.Printf("Imported %s\n", args[0])
	return nil
}
