package repository

import (
	"context"

	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
)

// Pinger represents a minimal readiness probe capability.
// It decouples health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// Context is passed through so nested calls honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// A single entry point keeps transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ProjectRepository declares persistence operations for projects.
// Implementations return domain models and surface domain errors from
// errors.go rather than PG codes. List consumes a pagination descriptor and
// must honor its window: never more than Limit rows.
type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	GetByID(ctx context.Context, id int64) (model.Project, error)
	List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[model.Project], error)
	Archive(ctx context.Context, id int64) (model.Project, error)
}

// TaskRepository declares persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	GetByID(ctx context.Context, id int64) (model.Task, error)
	ListByProject(ctx context.Context, projectID int64, req pagination.PageRequest) (pagination.PageResult[model.Task], error)
	UpdateStatus(ctx context.Context, id int64, status string) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	// MarkOverdue flips pending tasks whose due date has passed and returns
	// how many rows changed. Used by the scheduler sweep.
	MarkOverdue(ctx context.Context) (int64, error)
}
