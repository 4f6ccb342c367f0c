package instrumentation

import "testing"

func TestPathLabel(t *testing.T) {
	tests := []struct {
		pattern  string
		expected string
	}{
		{"/tasks", "/tasks"},
		{"/tasks/{task_id}", "/tasks/{task_id}"},
		{"/", "/"},
		{"", LabelUnmatched},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := PathLabel(tt.pattern); got != tt.expected {
				t.Errorf("PathLabel(%q) = %q, want %q", tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestToolLabel(t *testing.T) {
	known := func(name string) bool {
		return name == "get_task" || name == "create_task"
	}

	tests := []struct {
		name     string
		known    func(string) bool
		expected string
	}{
		{"get_task", known, "get_task"},
		{"create_task", known, "create_task"},
		{"drop_table", known, LabelUnknown},
		{"", known, LabelUnknown},
		{"get_task", nil, LabelUnknown},
	}

	for _, tt := range tests {
		if got := ToolLabel(tt.name, tt.known); got != tt.expected {
			t.Errorf("ToolLabel(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
