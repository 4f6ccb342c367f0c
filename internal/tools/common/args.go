package common

import (
	"encoding/json"
	"math"
)

// TaskIDArgument is the argument name every single-task tool uses.
const TaskIDArgument = "task_id"

// TaskIDFromArgs returns the integral task_id argument, if present. It is
// lenient: anything that does not look like an integer yields (0, false) and
// the tool itself reports the argument error.
func TaskIDFromArgs(args map[string]any) (int, bool) {
	switch v := args[TaskIDArgument].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
