package tasks_tools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/teemow/taskmanager/internal/tasks"
)

// ArgumentError reports a missing or malformed tool argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

func missingArgument(name string) error {
	return &ArgumentError{Name: name, Reason: "required argument is missing"}
}

type getTaskRequest struct {
	TaskID int
}

type createTaskRequest struct {
	Task tasks.NewTask
}

type updateTaskRequest struct {
	TaskID int
	Update tasks.TaskUpdate
}

type deleteTaskRequest struct {
	TaskID int
}

func parseGetTask(args map[string]any) (getTaskRequest, error) {
	id, err := requiredInt(args, argTaskID)
	return getTaskRequest{TaskID: id}, err
}

func parseDeleteTask(args map[string]any) (deleteTaskRequest, error) {
	id, err := requiredInt(args, argTaskID)
	return deleteTaskRequest{TaskID: id}, err
}

// parseCreateTask requires title and description. completed defaults to false.
func parseCreateTask(args map[string]any) (createTaskRequest, error) {
	title, err := optionalString(args, argTitle)
	if err != nil {
		return createTaskRequest{}, err
	}
	if title == nil {
		return createTaskRequest{}, missingArgument(argTitle)
	}

	description, err := optionalString(args, argDescription)
	if err != nil {
		return createTaskRequest{}, err
	}
	if description == nil {
		return createTaskRequest{}, missingArgument(argDescription)
	}

	completed, err := optionalBool(args, argCompleted)
	if err != nil {
		return createTaskRequest{}, err
	}
	if completed == nil {
		completed = tasks.Bool(false)
	}

	return createTaskRequest{Task: tasks.NewTask{
		Title:       title,
		Description: description,
		Completed:   completed,
	}}, nil
}

// parseUpdateTask carries over only the fields present in args.
func parseUpdateTask(args map[string]any) (updateTaskRequest, error) {
	id, err := requiredInt(args, argTaskID)
	if err != nil {
		return updateTaskRequest{}, err
	}

	req := updateTaskRequest{TaskID: id}
	if req.Update.Title, err = optionalString(args, argTitle); err != nil {
		return updateTaskRequest{}, err
	}
	if req.Update.Description, err = optionalString(args, argDescription); err != nil {
		return updateTaskRequest{}, err
	}
	if req.Update.Completed, err = optionalBool(args, argCompleted); err != nil {
		return updateTaskRequest{}, err
	}
	return req, nil
}

// requiredInt accepts any JSON number with an integral value.
func requiredInt(args map[string]any, name string) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, missingArgument(name)
	}

	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, &ArgumentError{Name: name, Reason: fmt.Sprintf("must be an integer, got %v", v)}
		}
		if math.Abs(v) > 1<<53 {
			return 0, &ArgumentError{Name: name, Reason: "out of range"}
		}
		return int(v), nil
	case float32:
		return requiredInt(map[string]any{name: float64(v)}, name)
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, &ArgumentError{Name: name, Reason: fmt.Sprintf("must be an integer, got %s", v)}
		}
		return int(n), nil
	default:
		return 0, &ArgumentError{Name: name, Reason: fmt.Sprintf("must be a number, got %T", raw)}
	}
}

// optionalString returns nil when the argument is absent or null.
func optionalString(args map[string]any, name string) (*string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &ArgumentError{Name: name, Reason: fmt.Sprintf("must be a string, got %T", raw)}
	}
	return &s, nil
}

// optionalBool returns nil when the argument is absent or null.
func optionalBool(args map[string]any, name string) (*bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, &ArgumentError{Name: name, Reason: fmt.Sprintf("must be a boolean, got %T", raw)}
	}
	return &b, nil
}
