package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

var resetAll bool

var checkinCmd = &cobra.Command{
	Use:   "checkin <site> [email]",
	Short: "Record a check-in for a site's credentials",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCheckin,
}

var resetCmd = &cobra.Command{
	Use:   "reset [site] [email]",
	Short: "Clear today's check-in marks",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetAll, "all", "a", false, "reset every credential")
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(resetCmd)
}

func runCheckin(cmd *cobra.Command, args []string) error {
	site := findSiteByName(args[0])
	if site == nil {
		return fmt.Errorf("site %q not found", args[0])
	}

	creds := site.Credentials
	if len(args) == 2 {
		_, cred, err := resolveCredential(args[0], args[1])
		if err != nil {
			return err
		}
		creds = []models.Credential{*cred}
	}
	if len(creds) == 0 {
		return fmt.Errorf("site %q has no credentials", site.Name)
	}

	for _, cred := range creds {
		if !app.state.CheckIn(site.ID, cred.ID) {
			return fmt.Errorf("check-in failed for %s", cred.Email)
		}
		cmd.Printf("Checked in %s on %s\n", cred.Email, site.Name)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if resetAll {
		app.state.ResetAll()
		cmd.Println("Reset all check-ins.")
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("specify a site and credential, or use --all")
	}
	site, cred, err := resolveCredential(args[0], args[1])
	if err != nil {
		return err
	}
	if !app.state.ResetCredential(site.ID, cred.ID) {
		return fmt.Errorf("reset failed for %s", cred.Email)
	}
	cmd.Printf("Reset %s on %s\n", cred.Email, site.Name)
	return nil
}
