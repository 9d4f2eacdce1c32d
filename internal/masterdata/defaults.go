package masterdata

import "github.com/swagforge/swagforge-cli/internal/core/filter"

// Built-in master data used until the files exist on disk. IDs are stable so
// edits survive re-flushing.

func defaultStatusScripts() []StatusScript {
	return []StatusScript{
		{
			ID:          "default-2xx-test",
			StatusCode:  "2XX",
			ScriptType:  "test",
			Script:      "pm.test(\"Successful response\", function () {\n    pm.expect(pm.response.code).to.be.within(200, 299);\n});",
			Description: "Asserts a success status on every 2XX response",
		},
		{
			ID:          "default-4xx-test",
			StatusCode:  "4XX",
			ScriptType:  "test",
			Script:      "pm.test(\"Client error response\", function () {\n    pm.expect(pm.response.code).to.be.within(400, 499);\n});",
			Description: "Asserts a client error status on every 4XX response",
		},
	}
}

func defaultInjectionResponses() []InjectionResponseConfig {
	return []InjectionResponseConfig{
		{ID: "default-xss-response", InjectionType: "xss", StatusCode: 400, Message: "Invalid input detected"},
		{ID: "default-sql-response", InjectionType: "sql", StatusCode: 400, Message: "Invalid input detected"},
		{ID: "default-html-response", InjectionType: "html", StatusCode: 400, Message: "Invalid input detected"},
	}
}

func defaultFilteringConditions() []FilteringCondition {
	var conditions []FilteringCondition
	for _, dataType := range []string{"string", "number", "boolean"} {
		for _, key := range filter.DefaultConditions(dataType) {
			conditions = append(conditions, FilteringCondition{
				ID:       "default-" + dataType + "-" + key,
				DataType: dataType,
				Key:      key,
				Value:    key,
			})
		}
	}
	return conditions
}
