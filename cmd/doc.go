// Package cmd implements the command-line interface for taskmanager.
//
// This package provides the following commands:
//   - serve: Run the task REST API (default when no subcommand is given)
//   - mcp: Run the MCP server exposing the task tools over stdio or streamable HTTP
//   - generate-docs: Generate markdown documentation for the tools and endpoints
//
// Every flag with an environment variable only reads it when the flag was
// not set on the command line.
package cmd
