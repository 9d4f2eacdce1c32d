package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/core/auth"
	"github.com/swagforge/swagforge-cli/internal/core/convert"
	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/security"
	"github.com/swagforge/swagforge-cli/internal/core/specconv"
	"github.com/swagforge/swagforge-cli/internal/infra/logger"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
	"github.com/swagforge/swagforge-cli/internal/masterdata"
)

var (
	convertInjections    string
	convertEnvironments  string
	convertGlobalHeaders string
	convertNoLogin       bool
	convertAI            bool

	convertAuthType  string
	convertAuthToken string
	convertAuthKey   string
	convertAuthValue string
	convertAuthUser  string
	convertAuthPass  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <spec-file>",
	Short: "Convert an OpenAPI specification into a Postman collection",
	Long: `Convert parses an OpenAPI document (JSON or YAML), builds a Postman
Collection v2.1 with master-data global headers, status scripts and the
stored login collection applied, optionally adds XSS/SQL/HTML injection
folders, generates per-stage environment files and saves everything under
the sanitized API name.

Non-OpenAPI inputs (markdown, plain text) can be converted through the
configured LLM provider with --ai.`,
	Args: cobra.ExactArgs(1),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertInjections, "injections", "", "Injection classes to generate (comma list of xss,sql,html)")
	convertCmd.Flags().StringVar(&convertEnvironments, "environments", "", "Stages to generate environment files for (e.g. local,dev,qa,uat,prod)")
	convertCmd.Flags().StringVar(&convertGlobalHeaders, "global-headers", "all", "Global headers to apply: 'all', 'none', or a comma list of header ids/keys")
	convertCmd.Flags().BoolVar(&convertNoLogin, "no-login", false, "Skip prepending the stored login collection")
	convertCmd.Flags().BoolVar(&convertAI, "ai", false, "Convert non-OpenAPI input through the configured LLM provider first")

	convertCmd.Flags().StringVar(&convertAuthType, "auth", "", "Authentication type (bearer|jwt|apikey|basic)")
	convertCmd.Flags().StringVar(&convertAuthToken, "token", "", "Bearer token")
	convertCmd.Flags().StringVar(&convertAuthKey, "key", "", "API key name (e.g., X-API-Key)")
	convertCmd.Flags().StringVar(&convertAuthValue, "value", "", "API key value")
	convertCmd.Flags().StringVar(&convertAuthUser, "user", "", "Username for basic auth")
	convertCmd.Flags().StringVar(&convertAuthPass, "pass", "", "Password for basic auth")
}

func runConvert(cmd *cobra.Command, args []string) {
	specPath := args[0]
	content, err := os.ReadFile(specPath)
	if err != nil {
		fail("failed to read specification", err)
	}

	doc, parseErr := openapi.Parse(content)
	if parseErr != nil || doc.DetectVersion() == "unknown" {
		if !convertAI {
			fail("input is not an OpenAPI document (retry with --ai to convert it)", parseErr)
		}
		format := specconv.DetectFormat(specPath, content)
		fmt.Printf("Converting %s input to OpenAPI 3.0...\n", format)
		converted, err := specconv.ToOpenAPI(content, format)
		if err != nil {
			fail("AI conversion failed", err)
		}
		content = converted
		if doc, err = openapi.Parse(content); err != nil {
			fail("converted document is not parseable", err)
		}
	}

	repo := loadMasterData()

	opts := convert.Options{
		AuthType:      convertAuthType,
		AuthValues:    authValuesFromFlags(),
		Injections:    parseInjections(convertInjections),
		Environments:  splitList(convertEnvironments),
		GlobalHeaders: selectedGlobalHeaders(repo, convertGlobalHeaders),
		Scripts:       repo,
		Responses:     repo,
		Defaults:      repo,
	}
	if !convertNoLogin {
		opts.LoginItems = repo.LoginItems()
	}

	result, err := convert.Convert(doc, opts)
	if err != nil {
		fail("conversion failed", err)
	}

	if _, err := storage.SaveSpec(result.APIName, content); err != nil {
		logger.Warn("Failed to save specification copy", logger.Err(err))
	}

	path, err := storage.SaveCollection(result.CollectionID, result.Collection)
	if err != nil {
		fail("failed to save collection", err)
	}

	fmt.Printf("✓ Collection '%s' saved\n", result.APIName)
	fmt.Printf("  %s\n", path)

	for _, env := range result.Environments {
		envPath, err := storage.SaveEnvironment(result.CollectionID, env.Display, env.Document)
		if err != nil {
			fail("failed to save environment "+env.Display, err)
		}
		fmt.Printf("✓ Environment '%s - %s' saved\n", result.APIName, env.Display)
		fmt.Printf("  %s\n", envPath)
	}

	if len(result.Variables) > 0 {
		fmt.Printf("  Variables: %s\n", strings.Join(result.Variables, ", "))
	}
}

func authValuesFromFlags() map[string]string {
	switch convertAuthType {
	case "bearer", "jwt":
		if convertAuthToken == "" {
			fail("--token is required when using --auth "+convertAuthType, nil)
		}
		return map[string]string{"token": convertAuthToken}
	case "apikey", "apiKey":
		if convertAuthKey == "" || convertAuthValue == "" {
			fail("--key and --value are required when using --auth apikey", nil)
		}
		return map[string]string{"key": convertAuthKey, "value": convertAuthValue, "location": "header"}
	case "basic":
		if convertAuthUser == "" || convertAuthPass == "" {
			fail("--user and --pass are required when using --auth basic", nil)
		}
		return map[string]string{"username": convertAuthUser, "password": convertAuthPass}
	case "", "none":
		return nil
	default:
		if _, err := auth.ParseAuthType(convertAuthType); err != nil {
			fail("invalid auth type", err)
		}
		return nil
	}
}

func parseInjections(value string) []security.Class {
	var xss, sql, html bool
	for _, class := range splitList(value) {
		switch strings.ToLower(class) {
		case "xss":
			xss = true
		case "sql":
			sql = true
		case "html":
			html = true
		default:
			fail(fmt.Sprintf("unknown injection class %q (valid: xss, sql, html)", class), nil)
		}
	}
	return security.Selected(xss, sql, html)
}

// selectedGlobalHeaders resolves the --global-headers flag against the
// master data store: all enabled headers, none, or an id/key subset.
func selectedGlobalHeaders(repo *masterdata.Repository, selection string) []convert.Header {
	if selection == "none" {
		return nil
	}

	var subset map[string]bool
	if selection != "" && selection != "all" {
		subset = make(map[string]bool)
		for _, entry := range splitList(selection) {
			subset[entry] = true
		}
	}

	var headers []convert.Header
	for _, h := range repo.GlobalHeaders() {
		if h.Enabled != nil && !*h.Enabled {
			continue
		}
		if subset != nil && !subset[h.ID] && !subset[h.Key] {
			continue
		}
		headers = append(headers, convert.Header{
			Key:         h.Key,
			Value:       h.Value,
			Description: h.Description,
		})
	}
	return headers
}
