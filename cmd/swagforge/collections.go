package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/cli"
	"github.com/swagforge/swagforge-cli/internal/core/merge"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
)

var (
	collectionsPlain bool
	combineName      string
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage stored Postman collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored collections",
	Args:  cobra.NoArgs,
	Run:   runCollectionsList,
}

var collectionsShowCmd = &cobra.Command{
	Use:   "show <collection-id>",
	Short: "Print a stored collection as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := storage.LoadCollection(args[0])
		if err != nil {
			fail("failed to load collection", err)
		}
		fmt.Println(postman.JSONString(collection))
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <collection-id>",
	Short: "Delete a stored collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := storage.DeleteCollection(args[0]); err != nil {
			fail("failed to delete collection", err)
		}
		fmt.Printf("✓ Collection '%s' deleted\n", args[0])
	},
}

var collectionsCloneCmd = &cobra.Command{
	Use:   "clone <collection-id>",
	Short: "Clone a stored collection under a copy suffix",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		newID, path, err := storage.CloneCollection(args[0])
		if err != nil {
			fail("failed to clone collection", err)
		}
		fmt.Printf("✓ Collection cloned as '%s'\n", newID)
		fmt.Printf("  %s\n", path)
	},
}

var collectionsCombineCmd = &cobra.Command{
	Use:   "combine <collection-id> <collection-id> [collection-id...]",
	Short: "Merge several collections into one, grouping requests by name",
	Args:  cobra.MinimumNArgs(2),
	Run:   runCollectionsCombine,
}

func init() {
	collectionsListCmd.Flags().BoolVar(&collectionsPlain, "plain", false, "Print a plain list instead of the interactive picker")
	collectionsCombineCmd.Flags().StringVar(&combineName, "name", "", "Name for the merged collection (required)")
	_ = collectionsCombineCmd.MarkFlagRequired("name")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsShowCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	collectionsCmd.AddCommand(collectionsCloneCmd)
	collectionsCmd.AddCommand(collectionsCombineCmd)
}

func runCollectionsList(cmd *cobra.Command, args []string) {
	infos, err := storage.ListCollections()
	if err != nil {
		fail("failed to list collections", err)
	}

	if collectionsPlain || len(infos) == 0 {
		if len(infos) == 0 {
			fmt.Println("No collections stored. Run 'swagforge convert <spec>' to create one.")
			return
		}
		for _, info := range infos {
			fmt.Printf("%-30s %s\n", info.ID, info.Name)
		}
		return
	}

	listModel := cli.NewCollectionListModel(infos)
	p := tea.NewProgram(listModel)

	finalModel, err := p.Run()
	if err != nil {
		fail("failed to run collection list", err)
	}

	result, ok := finalModel.(cli.CollectionListModel)
	if !ok {
		fail("unexpected model type", nil)
	}

	selected := result.SelectedCollection()
	if selected == nil {
		return
	}

	fmt.Printf("%s\n", selected.Name)
	fmt.Printf("  ID:   %s\n", selected.ID)
	fmt.Printf("  Path: %s\n", selected.Path)
}

func runCollectionsCombine(cmd *cobra.Command, args []string) {
	sources := make([]merge.Source, 0, len(args))
	for _, id := range args {
		collection, err := storage.LoadCollection(id)
		if err != nil {
			fail("failed to load collection "+id, err)
		}

		name := id
		if info, ok := collection["info"].(map[string]any); ok {
			if n, ok := info["name"].(string); ok && n != "" {
				name = n
			}
		}
		variables, _ := collection["variable"].([]any)

		sources = append(sources, merge.Source{
			Name:      name,
			Items:     postman.Items(collection),
			Variables: variables,
		})
	}

	combined, err := merge.Combine(combineName, sources)
	if err != nil {
		fail("combine failed", err)
	}

	id := storage.CollectionID(combineName)
	path, err := storage.SaveCollection(id, combined)
	if err != nil {
		fail("failed to save merged collection", err)
	}

	fmt.Printf("✓ Merged %d collections into '%s'\n", len(sources), combineName)
	fmt.Printf("  %s\n", path)
}
