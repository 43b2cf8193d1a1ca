package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

var (
	siteURL      string
	siteCategory string
	siteTags     []string
	siteNotes    string
	sitePriority string
)

var addSiteCmd = &cobra.Command{
	Use:   "add-site <name>",
	Short: "Add a site to track",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddSite,
}

var deleteSiteCmd = &cobra.Command{
	Use:   "delete-site <name>",
	Short: "Delete a site and its credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteSite,
}

func init() {
	addSiteCmd.Flags().StringVarP(&siteURL, "url", "u", "", "site URL")
	addSiteCmd.Flags().StringVarP(&siteCategory, "category", "c", "", "category id")
	addSiteCmd.Flags().StringSliceVarP(&siteTags, "tag", "t", nil, "tag (repeatable)")
	addSiteCmd.Flags().StringVarP(&siteNotes, "notes", "n", "", "free-form notes")
	addSiteCmd.Flags().StringVarP(&sitePriority, "priority", "p", "normal", "priority (low|normal|high)")
	_ = addSiteCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(addSiteCmd)
	rootCmd.AddCommand(deleteSiteCmd)
}

func runAddSite(cmd *cobra.Command, args []string) error {
	site := models.NewSite(args[0], siteURL, app.now())
	site.Category = siteCategory
	site.Tags = siteTags
	site.Notes = siteNotes
	site.Priority = sitePriority

	if err := app.state.AddSite(site); err != nil {
		return err
	}
	cmd.Printf("Added %s (%s)\n", site.Name, site.ID)
	return nil
}

func runDeleteSite(cmd *cobra.Command, args []string) error {
	site := findSiteByName(args[0])
	if site == nil {
		return fmt.Errorf("site %q not found", args[0])
	}
	if !app.state.DeleteSite(site.ID) {
		return fmt.Errorf("site %q not found", args[0])
	}
	cmd.Printf("Deleted %s\n", site.Name)
	return nil
}

// findSiteByName resolves a site by exact name, falling back to id.
func findSiteByName(name string) *models.Site {
	doc := app.state.Document()
	for i := range doc.Sites {
		if doc.Sites[i].Name == name {
			return &doc.Sites[i]
		}
	}
	return doc.FindSite(name)
}
