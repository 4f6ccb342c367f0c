package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the taskmanager application
var rootCmd = &cobra.Command{
	Use:   "taskmanager",
	Short: "Task tracking REST API with an MCP tool server",
	Long: `taskmanager keeps a list of tasks and exposes it two ways:

  - serve: a JSON REST API (default)
  - mcp:   a Model Context Protocol server whose tools call the REST API`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskmanager version %s\n" .Version}}`)

	// If no subcommand is provided, run the REST API
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
