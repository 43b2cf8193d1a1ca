package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/state"
)

var (
	listStatus   string
	listCategory string
	listTag      string
	listSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked sites",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", state.StatusAll, "filter by status (all|done|pending)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category id")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "filter by tag")
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "search sites, tags and credentials")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	app.state.SetStatusFilter(listStatus)
	app.state.SetCategoryFilter(listCategory)
	app.state.SetTagFilter(listTag)
	app.state.SetSearch(listSearch)

	today := datex.Today(app.now())
	sites := app.state.GetFilteredSites(today)
	if len(sites) == 0 {
		cmd.Println("No sites match.")
		return nil
	}

	doc := app.state.Document()
	done := color.New(color.FgGreen).SprintFunc()
	pending := color.New(color.FgYellow).SprintFunc()

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("NAME", "URL", "CATEGORY", "TAGS", "STATUS")
	for _, site := range sites {
		status := pending("pending")
		if site.AllCheckedIn(today) {
			status = done("done")
		}
		category := site.Category
		if cat := doc.FindCategory(site.Category); cat != nil {
			category = cat.Name
		}
		table.AddRow(site.Name, site.URL, category, strings.Join(site.Tags, ","), status)
	}
	cmd.Println(table.String())
	return nil
}
