// Package resources provides read-only MCP resources backed by the task
// service. MCP clients can fetch the current task list as a JSON document
// without calling a tool.
package resources
