package tasks

import (
	"strings"
	"sync"
)

// Store holds tasks in memory for the lifetime of the process.
// It is safe for concurrent use; each operation runs under a single lock.
type Store struct {
	mu     sync.RWMutex
	tasks  []Task
	nextID int
}

// NewStore creates an empty store whose first task gets id 1.
func NewStore() *Store {
	return &Store{
		tasks:  make([]Task, 0),
		nextID: 1,
	}
}

// List returns all tasks in creation order.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Len returns the number of tasks currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	t := s.tasks[i]
	return &t, nil
}

// Create assigns the next id to a new task and appends it.
func (s *Store) Create(in NewTask) (*Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := Task{
		Title:       *in.Title,
		Description: *in.Description,
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, t)
	return &t, nil
}

// Update applies the fields set in u to the task with the given id.
// Fields left nil keep their current values.
func (s *Store) Update(id int, u TaskUpdate) (*Task, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}

	t := &s.tasks[i]
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}

	result := *t
	return &result, nil
}

// Delete removes the task with the given id and returns it.
func (s *Store) Delete(id int) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return &removed, nil
}

// indexOf returns the slice index of the task with id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks required fields and rejects a blank title.
func (in NewTask) Validate() error {
	verr := &ValidationError{}
	switch {
	case in.Title == nil:
		verr.Add("title", "missing", "Field required")
	case strings.TrimSpace(*in.Title) == "":
		verr.Add("title", "string_too_short", "Title must not be empty")
	}
	if in.Description == nil {
		verr.Add("description", "missing", "Field required")
	}
	return verr.errOrNil()
}

// Validate rejects an explicitly blank title. Absent fields are always valid.
func (u TaskUpdate) Validate() error {
	verr := &ValidationError{}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		verr.Add("title", "string_too_short", "Title must not be empty")
	}
	return verr.errOrNil()
}
