package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check GitHub for a newer release",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info, err := updater.CheckLatestVersion(version)
		if err != nil {
			fail("update check failed", err)
		}

		if !info.IsNewer {
			fmt.Printf("swagforge %s is up to date (latest: %s)\n", info.CurrentVersion, info.LatestVersion)
			return
		}

		fmt.Printf("A newer version is available: %s (current: %s)\n", info.LatestVersion, info.CurrentVersion)
		if info.ReleaseNotes != "" {
			fmt.Println()
			fmt.Println(info.ReleaseNotes)
		}
		if info.HTMLURL != "" {
			fmt.Println()
			fmt.Println(info.HTMLURL)
		}
	},
}
