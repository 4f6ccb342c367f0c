package tasks

// Task is a single tracked task.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewTask is the input for creating a task.
// Title and Description are required; Completed defaults to false.
type NewTask struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed,omitempty"`
}

// TaskUpdate is a partial update. Only non-nil fields are applied.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the update sets no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// DeletedMessage is the confirmation text returned with a deleted task.
const DeletedMessage = "Task deleted successfully"

// Deleted is the confirmation returned by a delete operation.
type Deleted struct {
	Message string `json:"message"`
	Task    Task   `json:"task"`
}

// NewDeleted wraps a removed task in the standard confirmation.
func NewDeleted(t Task) *Deleted {
	return &Deleted{
		Message: DeletedMessage,
		Task:    t,
	}
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
