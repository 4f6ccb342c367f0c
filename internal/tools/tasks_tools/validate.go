package tasks_tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists the ways an argument bag violates a tool's input schema.
type SchemaError struct {
	Tool     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Problems, "; "))
}

// schemaDocument renders the input schema of tool as a JSON schema document.
func schemaDocument(tool mcp.Tool) map[string]any {
	properties := make(map[string]any, len(tool.InputSchema.Properties))
	for name, prop := range tool.InputSchema.Properties {
		properties[name] = prop
	}

	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	// An empty required list is not valid draft-04.
	if len(tool.InputSchema.Required) > 0 {
		doc["required"] = tool.InputSchema.Required
	}
	return doc
}

var compiledSchemas = sync.OnceValues(func() (map[string]*gojsonschema.Schema, error) {
	out := make(map[string]*gojsonschema.Schema)
	for _, tool := range Tools() {
		raw, err := json.Marshal(schemaDocument(tool))
		if err != nil {
			return nil, fmt.Errorf("failed to encode schema for %s: %w", tool.Name, err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for %s: %w", tool.Name, err)
		}
		out[tool.Name] = schema
	}
	return out, nil
})

// validateArguments checks args against the input schema of the named tool.
func validateArguments(tool string, args map[string]any) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[tool]
	if !ok {
		return fmt.Errorf("no input schema for tool %s", tool)
	}

	// null is treated as an absent argument
	present := make(map[string]any, len(args))
	for k, v := range args {
		if v != nil {
			present[k] = v
		}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(present))
	if err != nil {
		return fmt.Errorf("failed to validate arguments for %s: %w", tool, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &SchemaError{Tool: tool, Problems: problems}
}
