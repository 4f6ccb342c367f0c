package instrumentation

// Cardinality management helpers for metrics.
// Label values that come from callers (request paths, tool names sent by an
// agent) are collapsed to a bounded set before they reach a metric.

const (
	// LabelUnmatched is used for HTTP requests that matched no route.
	LabelUnmatched = "unmatched"

	// LabelUnknown is used for tool names that are not registered.
	LabelUnknown = "unknown"
)

// PathLabel returns the route pattern for use as a path label.
// Raw request paths carry task ids and must never be used directly.
//
// Example:
//
//	PathLabel("/tasks/{task_id}")  // "/tasks/{task_id}"
//	PathLabel("")                  // "unmatched"
func PathLabel(routePattern string) string {
	if routePattern == "" {
		return LabelUnmatched
	}
	return routePattern
}

// ToolLabel returns name if it is a known tool and "unknown" otherwise.
func ToolLabel(name string, known func(string) bool) string {
	if name == "" || known == nil || !known(name) {
		return LabelUnknown
	}
	return name
}
