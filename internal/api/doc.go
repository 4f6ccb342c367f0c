// Package api exposes the task store over HTTP and provides the clients the
// MCP tool adapter uses to reach it.
//
// The REST surface mirrors the shared tasks.Operations table:
//
//	GET    /                  welcome message and endpoint listing
//	GET    /tasks             all tasks in creation order
//	GET    /tasks/{task_id}   one task, 404 when absent
//	POST   /tasks             create, 422 on invalid input
//	PUT    /tasks/{task_id}   partial update, 404 / 422
//	DELETE /tasks/{task_id}   remove, returns the deleted task
//
// Errors use a {"detail": ...} body. Validation failures carry a list of
// {"loc", "msg", "type"} entries.
//
// TaskService is implemented twice: Client talks to a remote instance over
// HTTP and LocalClient wraps an in-process tasks.Store. Both report failures
// the REST API would answer with an error status as *StatusError, so callers
// render them identically.
package api
