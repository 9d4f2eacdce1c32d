package postman

// ScriptEvents renders pre-request and test script lines into Postman event
// entries. Empty line sets produce no entry, so a request with no scripts
// gets no event list at all.
func ScriptEvents(prerequest, test []string) []any {
	var events []any
	if len(prerequest) > 0 {
		events = append(events, scriptEvent("prerequest", prerequest))
	}
	if len(test) > 0 {
		events = append(events, scriptEvent("test", test))
	}
	return events
}

func scriptEvent(listen string, exec []string) map[string]any {
	lines := make([]any, len(exec))
	for i, line := range exec {
		lines[i] = line
	}
	return map[string]any{
		"listen": listen,
		"script": map[string]any{
			"type": "text/javascript",
			"exec": lines,
		},
	}
}
