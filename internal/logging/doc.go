// Package logging provides structured logging utilities for taskmanager.
//
// All components log through log/slog. Setup installs the process-wide
// handler (text or JSON) once at startup; the attribute helpers in this
// package keep key names consistent between the REST API, the task store
// and the MCP tool adapter.
//
// # Usage Patterns
//
//	logger := logging.Setup(logging.Options{Level: slog.LevelInfo, Format: logging.FormatJSON})
//	logger.Info("task created",
//	    logging.Operation("create"),
//	    logging.TaskID(task.ID),
//	    logging.Status(logging.StatusSuccess))
//
// Task titles and descriptions are free text supplied by users and are not
// logged by default.
package logging
