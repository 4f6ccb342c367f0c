// Package tasks provides the task model and the in-memory task store.
//
// The store is the single source of truth for task state. Both the HTTP
// resource layer (internal/api) and the MCP tool adapter
// (internal/tools/tasks_tools) are thin translators over it.
//
// # Invariants
//
//   - Ids are assigned by the store, start at 1 and strictly increase.
//     Deleted ids are never reissued.
//   - A task's id never changes after creation.
//   - List returns tasks in creation order. Deletion removes an entry in
//     place without reordering the survivors.
//
// # Example Usage
//
//	store := tasks.NewStore()
//
//	task, err := store.Create(tasks.NewTask{
//	    Title:       tasks.String("Write report"),
//	    Description: tasks.String("Quarterly numbers"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Mark it done; title and description are left untouched
//	task, err = store.Update(task.ID, tasks.TaskUpdate{Completed: tasks.Bool(true)})
//
//	// Remove it again
//	deleted, err := store.Delete(task.ID)
//
// # Operations
//
// Operations lists the five task operations together with their HTTP route
// and MCP tool name, so that a new operation is declared once and exposed on
// both surfaces.
package tasks
