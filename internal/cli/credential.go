package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

var (
	credLabel    string
	credEmail    string
	credPassword string
	credPrompt   bool
)

var addCredentialCmd = &cobra.Command{
	Use:   "add-credential <site>",
	Short: "Add a credential to a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddCredential,
}

var deleteCredentialCmd = &cobra.Command{
	Use:   "delete-credential <site> <email>",
	Short: "Delete a credential from a site",
	Args:  cobra.ExactArgs(2),
	RunE:  runDeleteCredential,
}

func init() {
	addCredentialCmd.Flags().StringVarP(&credLabel, "label", "l", "default", "credential label")
	addCredentialCmd.Flags().StringVarP(&credEmail, "email", "e", "", "login email")
	addCredentialCmd.Flags().StringVarP(&credPassword, "password", "p", "", "password (prefer --ask)")
	addCredentialCmd.Flags().BoolVar(&credPrompt, "ask", false, "prompt for the password without echo")
	_ = addCredentialCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(addCredentialCmd)
	rootCmd.AddCommand(deleteCredentialCmd)
}

func runAddCredential(cmd *cobra.Command, args []string) error {
	site := findSiteByName(args[0])
	if site == nil {
		return fmt.Errorf("site %q not found", args[0])
	}

	password := credPassword
	if credPrompt {
		pw, err := GetPassword(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		password = string(pw)
		common.WipeByteArray(pw)
	}

	cred := models.NewCredential(credLabel, credEmail, password)
	if err := app.state.AddCredential(site.ID, cred); err != nil {
		return err
	}
	cmd.Printf("Added credential %s for %s\n", cred.Email, site.Name)
	return nil
}

func runDeleteCredential(cmd *cobra.Command, args []string) error {
	site, cred, err := resolveCredential(args[0], args[1])
	if err != nil {
		return err
	}
	if !app.state.DeleteCredential(site.ID, cred.ID) {
		return fmt.Errorf("credential %q not found on %s", args[1], site.Name)
	}
	cmd.Printf("Deleted credential %s from %s\n", cred.Email, site.Name)
	return nil
}

// resolveCredential resolves a site by name and one of its credentials by
// email or label.
func resolveCredential(siteName, ref string) (*models.Site, *models.Credential, error) {
	site := findSiteByName(siteName)
	if site == nil {
		return nil, nil, fmt.Errorf("site %q not found", siteName)
	}
	for i := range site.Credentials {
		c := &site.Credentials[i]
		if c.Email == ref || c.Label == ref || c.ID == ref {
			return site, c, nil
		}
	}
	return nil, nil, fmt.Errorf("credential %q not found on %s", ref, site.Name)
}

// confirm asks a yes/no question on the command's input stream.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.TrimSpace(line) {
	case "y", "Y", "yes":
		return true
	}
	return false
}
