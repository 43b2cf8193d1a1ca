package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

var (
	catColor string
	catIcon  string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage site categories",
	RunE:  runCategoriesList,
}

var addCategoryCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddCategory,
}

var deleteCategoryCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteCategory,
}

func init() {
	addCategoryCmd.Flags().StringVar(&catColor, "color", "#607d8b", "display color")
	addCategoryCmd.Flags().StringVar(&catIcon, "icon", "folder", "display icon")
	categoriesCmd.AddCommand(addCategoryCmd)
	categoriesCmd.AddCommand(deleteCategoryCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	doc := app.state.Document()

	table := uitable.New()
	table.AddRow("ID", "NAME", "SITES")
	for _, cat := range doc.Categories {
		count := 0
		for _, site := range doc.Sites {
			if site.Category == cat.ID {
				count++
			}
		}
		table.AddRow(cat.ID, cat.Name, count)
	}
	cmd.Println(table.String())
	return nil
}

func runAddCategory(cmd *cobra.Command, args []string) error {
	cat := &models.Category{Name: args[0], Color: catColor, Icon: catIcon}
	if err := app.state.AddCategory(cat); err != nil {
		return err
	}
	cmd.Printf("Added category %s (%s)\n", cat.Name, cat.ID)
	return nil
}

func runDeleteCategory(cmd *cobra.Command, args []string) error {
	if !app.state.DeleteCategory(args[0]) {
		return fmt.Errorf("category %q not found", args[0])
	}
	cmd.Printf("Deleted category %s\n", args[0])
	return nil
}
