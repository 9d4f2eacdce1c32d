package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	internalConfig "github.com/swagforge/swagforge-cli/internal/config"
	"github.com/swagforge/swagforge-cli/internal/infra/logger"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
	"github.com/swagforge/swagforge-cli/internal/masterdata"
	"github.com/swagforge/swagforge-cli/internal/updater"
)

var (
	version = "dev"
)

var (
	debugEnabled  bool
	debugFilePath string
)

var rootCmd = &cobra.Command{
	Use:   "swagforge",
	Short: "Swagforge - Swagger to Postman collection converter",
	Long: `Swagforge converts Swagger/OpenAPI specifications into Postman
collections with security injection tests, per-stage environment files,
filter-test request generation and collection merging.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&debugFilePath, "debug-file", "", "Path to debug log file (enables file logging)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		initLogger()
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(masterdataCmd)
	rootCmd.AddCommand(updateCmd)
}

func main() {
	_ = godotenv.Load()

	if version != "dev" {
		checkForUpdate(version)
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(1)
	}
	logger.Close()
}

func checkForUpdate(currentVersion string) {
	cfg, err := internalConfig.Load()
	if err != nil {
		return
	}

	if !cfg.ShouldCheckForUpdate() {
		return
	}

	info, err := updater.CheckLatestVersion(currentVersion)
	if err != nil {
		return
	}

	cfg.LastUpdateCheck = time.Now()
	cfg.LatestVersion = info.LatestVersion
	_ = cfg.Save()
}

func initLogger() {
	if !debugEnabled && internalConfig.GetEnv("debug") != "" {
		debugEnabled = true
	}
	if debugEnabled || debugFilePath != "" {
		if err := logger.Init(debugEnabled, debugFilePath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Swagforge starting", logger.String("version", version), logger.Bool("debug", debugEnabled))
	}
}

// fail logs the error and exits. The message also goes to stderr because the
// logger is a no-op outside debug mode.
func fail(msg string, err error) {
	logger.Error(msg, logger.Err(err))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}

// loadMasterData opens the master data repository under the swagforge home.
func loadMasterData() *masterdata.Repository {
	dir, err := storage.MasterDataDir()
	if err != nil {
		fail("failed to resolve master data directory", err)
	}
	repo := masterdata.New(dir)
	if err := repo.Load(); err != nil {
		fail("failed to load master data", err)
	}
	return repo
}

func readJSONFile(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("failed to read "+path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		fail("failed to parse "+path, err)
	}
	return doc
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
