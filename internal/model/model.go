// Package model contains domain entities shared across layers.
// Data shapes only, no behavior.
package model

import "time"

// Task statuses. Overdue is set by the scheduler sweep, not by clients.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusOverdue    = "overdue"
)

// Project groups tasks. Archived projects stay readable but reject new tasks.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Priority  int        `json:"priority"` // 1 (lowest) .. 5 (highest)
	Done      bool       `json:"done"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
