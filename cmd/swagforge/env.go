package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage generated Postman environment files",
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored environment files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		infos, err := storage.ListEnvironments()
		if err != nil {
			fail("failed to list environments", err)
		}
		if len(infos) == 0 {
			fmt.Println("No environments stored. Run 'swagforge convert --environments ...' to create some.")
			return
		}
		for _, info := range infos {
			fmt.Printf("%-40s %s\n", info.ID, info.Name)
		}
	},
}

var envShowCmd = &cobra.Command{
	Use:   "show <environment-id>",
	Short: "Print a stored environment as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := storage.LoadEnvironment(args[0])
		if err != nil {
			fail("failed to load environment", err)
		}
		fmt.Println(postman.JSONString(env))
	},
}

var envDeleteCmd = &cobra.Command{
	Use:   "delete <environment-id>",
	Short: "Delete a stored environment file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := storage.DeleteEnvironment(args[0]); err != nil {
			fail("failed to delete environment", err)
		}
		fmt.Printf("✓ Environment '%s' deleted\n", args[0])
	},
}

func init() {
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envDeleteCmd)
}
