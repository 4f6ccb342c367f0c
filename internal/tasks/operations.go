package tasks

import "net/http"

// Operation names, used as metric and span labels.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Operation describes one task operation and how it is exposed over HTTP
// and as an MCP tool.
type Operation struct {
	// Name is the store operation (list, get, create, update, delete).
	Name string

	// Method and Route form the HTTP endpoint, e.g. GET /tasks/{task_id}.
	Method string
	Route  string

	// Summary is the human-readable description listed by GET /.
	Summary string

	// Tool is the MCP tool name and ToolDescription its description.
	Tool            string
	ToolDescription string
}

// Endpoint returns the "METHOD /route" form of the operation.
func (o Operation) Endpoint() string {
	return o.Method + " " + o.Route
}

// Operations lists every task operation in declaration order.
var Operations = []Operation{
	{
		Name:            OperationList,
		Method:          http.MethodGet,
		Route:           "/tasks",
		Summary:         "Get all tasks",
		Tool:            "get_all_tasks",
		ToolDescription: "Get all tasks from the Task Manager",
	},
	{
		Name:            OperationGet,
		Method:          http.MethodGet,
		Route:           "/tasks/{task_id}",
		Summary:         "Get a specific task",
		Tool:            "get_task",
		ToolDescription: "Get a specific task by ID",
	},
	{
		Name:            OperationCreate,
		Method:          http.MethodPost,
		Route:           "/tasks",
		Summary:         "Create a new task",
		Tool:            "create_task",
		ToolDescription: "Create a new task in the Task Manager",
	},
	{
		Name:            OperationUpdate,
		Method:          http.MethodPut,
		Route:           "/tasks/{task_id}",
		Summary:         "Update a task",
		Tool:            "update_task",
		ToolDescription: "Update an existing task",
	},
	{
		Name:            OperationDelete,
		Method:          http.MethodDelete,
		Route:           "/tasks/{task_id}",
		Summary:         "Delete a task",
		Tool:            "delete_task",
		ToolDescription: "Delete a task by ID",
	},
}

// OperationByName returns the operation with the given store name.
func OperationByName(name string) (Operation, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// OperationByTool returns the operation exposed as the given MCP tool.
func OperationByTool(tool string) (Operation, bool) {
	for _, op := range Operations {
		if op.Tool == tool {
			return op, true
		}
	}
	return Operation{}, false
}
