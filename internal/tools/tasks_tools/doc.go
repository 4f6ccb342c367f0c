// Package tasks_tools exposes the task operations as MCP tools.
//
// # Available Tools
//
//   - get_all_tasks: Get all tasks from the Task Manager
//   - get_task: Get a specific task by ID
//   - create_task: Create a new task in the Task Manager
//   - update_task: Update an existing task
//   - delete_task: Delete a task by ID
//
// Every call goes through Adapter.Invoke, which resolves the tool, checks the
// arguments against the tool's input schema, parses them into a typed request,
// calls the TaskService and renders the outcome as a single text block.
// Failures never escape as Go errors or panics: they are rendered as text
// starting with "Error: " and flagged with IsError.
//
// The TaskService is either a remote task API reached over HTTP or an
// in-process store, see package api.
package tasks_tools
