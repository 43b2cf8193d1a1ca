package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
)

var (
	genLength  int
	genNoUpper bool
	genNoDigit bool
	genNoSym   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "n", 16, "password length")
	generateCmd.Flags().BoolVar(&genNoUpper, "no-upper", false, "exclude uppercase letters")
	generateCmd.Flags().BoolVar(&genNoDigit, "no-digits", false, "exclude digits")
	generateCmd.Flags().BoolVar(&genNoSym, "no-symbols", false, "exclude symbols")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := cryptox.DefaultCharset()
	opts.Uppercase = !genNoUpper
	opts.Digits = !genNoDigit
	opts.Symbols = !genNoSym

	pw, err := cryptox.GeneratePassword(genLength, opts)
	if err != nil {
		return err
	}
	cmd.Println(pw)
	return nil
}
