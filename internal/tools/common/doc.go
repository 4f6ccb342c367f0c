// Package common holds helpers shared by MCP tool packages: the
// instrumentation wrapper applied to every tool handler, and argument
// helpers used for audit records.
package common
