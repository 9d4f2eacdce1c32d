package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/core/merge"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <collection-id> <updated-file>",
	Short: "Merge an edited collection export back into the stored original",
	Long: `Merge walks the stored original depth first, replaces requests that
also appear in the edited export (matched by name and method), keeps
injection folders from the original verbatim, re-homes cloned requests into
their declared parent folder and strips the clone bookkeeping fields. The
result overwrites the stored collection.`,
	Args: cobra.ExactArgs(2),
	Run:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) {
	id := args[0]
	original, err := storage.LoadCollection(id)
	if err != nil {
		fail("failed to load collection", err)
	}

	updated := readJSONFile(args[1])

	merged, err := merge.Collection(original, updated)
	if err != nil {
		fail("merge failed", err)
	}

	path, err := storage.SaveCollection(id, merged)
	if err != nil {
		fail("failed to save merged collection", err)
	}

	fmt.Printf("✓ Collection '%s' merged\n", id)
	fmt.Printf("  %s\n", path)
}
