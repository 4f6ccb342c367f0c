package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/teemow/taskmanager/internal/api"
	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate tool and endpoint documentation",
		Long: `Generate markdown documentation for the MCP tools and the REST endpoints.
The tools are introspected from a registered MCP server, so the output always
matches the actual tool definitions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// An in-process store is enough, no tool is called
	serverContext, err := server.NewServerContext(context.Background(), api.NewLocalClient(tasks.NewStore(), nil))
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv, err := newMCPServer(serverContext, true, logging.Discard().Logger())
	if err != nil {
		return err
	}

	serverTools := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(serverTools))
	for _, serverTool := range serverTools {
		tools = append(tools, serverTool.Tool)
	}

	markdown := generateMarkdown(tools)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Print(markdown)
	}

	return nil
}

// toolOrder sorts tools the way the operations are declared. Unknown tools
// go last, by name.
func toolOrder(tools []mcp.Tool) {
	rank := func(name string) int {
		for i, op := range tasks.Operations {
			if op.Tool == name {
				return i
			}
		}
		return len(tasks.Operations)
	}
	sort.SliceStable(tools, func(i, j int) bool {
		ri, rj := rank(tools[i].Name), rank(tools[j].Name)
		if ri != rj {
			return ri < rj
		}
		return tools[i].Name < tools[j].Name
	})
}

func generateMarkdown(tools []mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString("# Task Manager Reference\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool and route definitions.\n\n")

	sb.WriteString("## HTTP Endpoints\n\n")
	sb.WriteString("| Method | Path | Description |\n")
	sb.WriteString("|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| GET | / | %s |\n", api.WelcomeMessage))
	for _, op := range tasks.Operations {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", op.Method, op.Route, op.Summary))
	}
	sb.WriteString("\n")

	sb.WriteString("## MCP Tools\n\n")
	toolOrder(tools)
	for _, tool := range tools {
		sb.WriteString(generateToolMarkdown(tool))
		sb.WriteString("\n")
	}

	return sb.String()
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", tool.Name))

	if tool.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", tool.Description))
	}
	if op, ok := tasks.OperationByTool(tool.Name); ok {
		sb.WriteString(fmt.Sprintf("Calls `%s`.\n\n", op.Endpoint()))
	}

	if len(tool.InputSchema.Properties) == 0 {
		sb.WriteString("No arguments.\n")
		return sb.String()
	}

	sb.WriteString("**Arguments:**\n")

	propNames := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		propNames = append(propNames, name)
	}
	// Required arguments first, then by name
	sort.Slice(propNames, func(i, j int) bool {
		ri := slices.Contains(tool.InputSchema.Required, propNames[i])
		rj := slices.Contains(tool.InputSchema.Required, propNames[j])
		if ri != rj {
			return ri
		}
		return propNames[i] < propNames[j]
	})

	for _, name := range propNames {
		propMap, ok := tool.InputSchema.Properties[name].(map[string]any)
		if !ok {
			continue
		}

		requiredStr := "optional"
		if slices.Contains(tool.InputSchema.Required, name) {
			requiredStr = "required"
		}

		propType := getPropertyType(propMap)
		sb.WriteString(fmt.Sprintf("- `%s` (%s, %s): ", name, propType, requiredStr))
		if desc, ok := propMap["description"].(string); ok {
			sb.WriteString(desc)
		} else {
			sb.WriteString(fmt.Sprintf("%s parameter", propType))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func getPropertyType(prop map[string]any) string {
	if t, ok := prop["type"].(string); ok {
		return t
	}
	return "any"
}
