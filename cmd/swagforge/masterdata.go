package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/masterdata"
)

var masterdataCmd = &cobra.Command{
	Use:   "masterdata",
	Short: "Manage the master data driving conversions",
	Long: `Masterdata manages the configuration applied to every conversion:
status scripts, injection responses, global headers, filtering conditions,
default API configs and the login collection. Files live under the
swagforge home directory and can be hand-edited; 'masterdata schema' emits
JSON Schemas for editor validation.`,
}

func flushMasterData(repo *masterdata.Repository) {
	if err := repo.Flush(); err != nil {
		fail("failed to write master data", err)
	}
}

func enabledMark(flag *bool) string {
	if flag != nil && !*flag {
		return "disabled"
	}
	return "enabled"
}

// --- status scripts ---

var (
	scriptStatus      string
	scriptType        string
	scriptContent     string
	scriptFile        string
	scriptDescription string
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage pre-request/test scripts attached to status codes",
}

var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List status scripts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range loadMasterData().StatusScripts() {
			fmt.Printf("%s  %-4s %-11s %-8s %s\n", s.ID, s.StatusCode, s.ScriptType, enabledMark(s.Enabled), s.Description)
		}
	},
}

var scriptsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a status script",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content := scriptContent
		if scriptFile != "" {
			data, err := os.ReadFile(scriptFile)
			if err != nil {
				fail("failed to read script file", err)
			}
			content = string(data)
		}
		if content == "" {
			fail("--script or --script-file is required", nil)
		}

		repo := loadMasterData()
		script, err := repo.AddStatusScript(masterdata.StatusScript{
			StatusCode:  scriptStatus,
			ScriptType:  scriptType,
			Script:      content,
			Description: scriptDescription,
		})
		if err != nil {
			fail("failed to add status script", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Status script %s added for %s\n", script.ID, script.StatusCode)
	},
}

var scriptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a status script",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteStatusScript(args[0]); err != nil {
			fail("failed to delete status script", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Status script %s deleted\n", args[0])
	},
}

// --- injection responses ---

var (
	responseType    string
	responseStatus  int
	responseMessage string
)

var responsesCmd = &cobra.Command{
	Use:   "responses",
	Short: "Manage expected responses per injection type",
}

var responsesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List injection responses",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, r := range loadMasterData().InjectionResponses() {
			fmt.Printf("%s  %-5s %d  %-8s %s\n", r.ID, r.InjectionType, r.StatusCode, enabledMark(r.Enabled), r.Message)
		}
	},
}

var responsesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an injection response",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		resp, err := repo.AddInjectionResponse(masterdata.InjectionResponseConfig{
			InjectionType: responseType,
			StatusCode:    responseStatus,
			Message:       responseMessage,
		})
		if err != nil {
			fail("failed to add injection response", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Injection response %s added for %s\n", resp.ID, resp.InjectionType)
	},
}

var responsesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an injection response",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteInjectionResponse(args[0]); err != nil {
			fail("failed to delete injection response", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Injection response %s deleted\n", args[0])
	},
}

// --- global headers ---

var (
	headerKey         string
	headerValue       string
	headerDescription string
	headerDisabled    bool
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Manage global headers applied to every generated request",
}

var headersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List global headers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, h := range loadMasterData().GlobalHeaders() {
			fmt.Printf("%s  %-20s %-20s %-8s %s\n", h.ID, h.Key, h.Value, enabledMark(h.Enabled), h.Description)
		}
	},
}

var headersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a global header",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		header := masterdata.GlobalHeader{
			Key:         headerKey,
			Value:       headerValue,
			Description: headerDescription,
		}
		if headerDisabled {
			disabled := false
			header.Enabled = &disabled
		}
		added, err := repo.AddGlobalHeader(header)
		if err != nil {
			fail("failed to add global header", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Global header %s added (%s)\n", added.ID, added.Key)
	},
}

var headersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a global header",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteGlobalHeader(args[0]); err != nil {
			fail("failed to delete global header", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Global header %s deleted\n", args[0])
	},
}

// --- filtering conditions ---

var (
	conditionDataType string
	conditionKey      string
	conditionValue    string
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Manage the filtering conditions per data type",
}

var conditionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List filtering conditions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range loadMasterData().FilteringConditions() {
			fmt.Printf("%s  %-10s %-12s %-8s %s\n", c.ID, c.DataType, c.Key, enabledMark(c.Enabled), c.Value)
		}
	},
}

var conditionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a filtering condition",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		condition, err := repo.AddFilteringCondition(masterdata.FilteringCondition{
			DataType: conditionDataType,
			Key:      conditionKey,
			Value:    conditionValue,
		})
		if err != nil {
			fail("failed to add filtering condition", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Filtering condition %s added (%s %s)\n", condition.ID, condition.DataType, condition.Key)
	},
}

var conditionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a filtering condition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteFilteringCondition(args[0]); err != nil {
			fail("failed to delete filtering condition", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Filtering condition %s deleted\n", args[0])
	},
}

var conditionsToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Enable or disable a filtering condition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		nowEnabled, err := repo.ToggleFilteringCondition(args[0])
		if err != nil {
			fail("failed to toggle filtering condition", err)
		}
		flushMasterData(repo)
		state := "disabled"
		if nowEnabled {
			state = "enabled"
		}
		fmt.Printf("✓ Filtering condition %s %s\n", args[0], state)
	},
}

var conditionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import filtering conditions from a JSON file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fail("failed to read conditions file", err)
		}
		var conditions []masterdata.FilteringCondition
		if err := json.Unmarshal(data, &conditions); err != nil {
			fail("failed to parse conditions file", err)
		}

		repo := loadMasterData()
		added, updated := repo.ImportFilteringConditions(conditions)
		flushMasterData(repo)
		fmt.Printf("✓ Imported filtering conditions: %d added, %d updated\n", added, updated)
	},
}

// --- default API configs ---

var (
	configAPIName     string
	configEnvironment string
	configVariables   []string
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Manage default variable values per API and environment",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List default API configs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range loadMasterData().DefaultAPIConfigs() {
			pairs := make([]string, 0, len(c.Variables))
			for k, v := range c.Variables {
				pairs = append(pairs, k+"="+v)
			}
			fmt.Printf("%s  %-25s %-8s %s\n", c.ID, c.APIName, c.Environment, strings.Join(pairs, " "))
		}
	},
}

var configsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a default API config",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		variables := make(map[string]string)
		for _, entry := range configVariables {
			key, value, ok := strings.Cut(entry, "=")
			if !ok || key == "" {
				fail(fmt.Sprintf("invalid --set entry %q (expected 'key=value')", entry), nil)
			}
			variables[key] = value
		}

		repo := loadMasterData()
		config, err := repo.AddDefaultAPIConfig(masterdata.DefaultAPIConfig{
			APIName:     configAPIName,
			Environment: configEnvironment,
			Variables:   variables,
		})
		if err != nil {
			fail("failed to add default API config", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Default config %s added for %s/%s\n", config.ID, config.APIName, config.Environment)
	},
}

var configsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a default API config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteDefaultAPIConfig(args[0]); err != nil {
			fail("failed to delete default API config", err)
		}
		flushMasterData(repo)
		fmt.Printf("✓ Default config %s deleted\n", args[0])
	},
}

// --- login collection ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Manage the login collection prepended to every conversion",
}

var loginShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored login collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		collection := loadMasterData().LoginCollection()
		if collection == nil {
			fmt.Println("No login collection stored.")
			return
		}
		fmt.Println(postman.JSONString(collection))
	},
}

var loginSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Store a collection export as the login collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		collection := readJSONFile(args[0])
		repo := loadMasterData()
		if err := repo.SetLoginCollection(collection); err != nil {
			fail("failed to store login collection", err)
		}
		flushMasterData(repo)
		fmt.Println("✓ Login collection stored")
	},
}

var loginDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored login collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := loadMasterData()
		if err := repo.DeleteLoginCollection(); err != nil {
			fail("failed to delete login collection", err)
		}
		fmt.Println("✓ Login collection deleted")
	},
}

// --- schemas ---

var schemaCmd = &cobra.Command{
	Use:   "schema [name]",
	Short: "Emit the JSON Schema for a master data file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, name := range masterdata.SchemaNames() {
				fmt.Println(name)
			}
			return
		}
		schema, err := masterdata.Schema(args[0])
		if err != nil {
			fail("failed to build schema", err)
		}
		fmt.Println(string(schema))
	},
}

func init() {
	scriptsAddCmd.Flags().StringVar(&scriptStatus, "status", "", "Status code or range the script attaches to (e.g. 400, 2XX)")
	scriptsAddCmd.Flags().StringVar(&scriptType, "type", "test", "Script type: pre-request or test")
	scriptsAddCmd.Flags().StringVar(&scriptContent, "script", "", "Script source")
	scriptsAddCmd.Flags().StringVar(&scriptFile, "script-file", "", "Path to a file holding the script source")
	scriptsAddCmd.Flags().StringVar(&scriptDescription, "description", "", "Script description")
	_ = scriptsAddCmd.MarkFlagRequired("status")
	scriptsCmd.AddCommand(scriptsListCmd, scriptsAddCmd, scriptsDeleteCmd)

	responsesAddCmd.Flags().StringVar(&responseType, "type", "", "Injection type: xss, sql or html")
	responsesAddCmd.Flags().IntVar(&responseStatus, "status", 400, "Expected status code")
	responsesAddCmd.Flags().StringVar(&responseMessage, "message", "", "Expected error message")
	_ = responsesAddCmd.MarkFlagRequired("type")
	_ = responsesAddCmd.MarkFlagRequired("message")
	responsesCmd.AddCommand(responsesListCmd, responsesAddCmd, responsesDeleteCmd)

	headersAddCmd.Flags().StringVar(&headerKey, "key", "", "Header name")
	headersAddCmd.Flags().StringVar(&headerValue, "value", "", "Header value")
	headersAddCmd.Flags().StringVar(&headerDescription, "description", "", "Header description")
	headersAddCmd.Flags().BoolVar(&headerDisabled, "disabled", false, "Store the header disabled")
	_ = headersAddCmd.MarkFlagRequired("key")
	_ = headersAddCmd.MarkFlagRequired("value")
	headersCmd.AddCommand(headersListCmd, headersAddCmd, headersDeleteCmd)

	conditionsAddCmd.Flags().StringVar(&conditionDataType, "data-type", "", "Data type the condition applies to (string, integer, ...)")
	conditionsAddCmd.Flags().StringVar(&conditionKey, "key", "", "Condition key (EQ, NEQ, Contains, ...)")
	conditionsAddCmd.Flags().StringVar(&conditionValue, "value", "", "Condition display value")
	_ = conditionsAddCmd.MarkFlagRequired("data-type")
	_ = conditionsAddCmd.MarkFlagRequired("key")
	conditionsCmd.AddCommand(conditionsListCmd, conditionsAddCmd, conditionsDeleteCmd, conditionsToggleCmd, conditionsImportCmd)

	configsAddCmd.Flags().StringVar(&configAPIName, "api", "", "API name the defaults apply to")
	configsAddCmd.Flags().StringVar(&configEnvironment, "env", "", "Environment stage the defaults apply to")
	configsAddCmd.Flags().StringArrayVar(&configVariables, "set", nil, "Variable default 'key=value' (repeatable)")
	_ = configsAddCmd.MarkFlagRequired("api")
	_ = configsAddCmd.MarkFlagRequired("env")
	configsCmd.AddCommand(configsListCmd, configsAddCmd, configsDeleteCmd)

	loginCmd.AddCommand(loginShowCmd, loginSetCmd, loginDeleteCmd)

	masterdataCmd.AddCommand(scriptsCmd, responsesCmd, headersCmd, conditionsCmd, configsCmd, loginCmd, schemaCmd)
}
