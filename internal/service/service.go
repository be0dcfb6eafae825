// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ProjectService defines project-oriented use cases. List operations take the
// raw query-parameter mapping from the HTTP boundary; normalization against
// the resource constraints happens here, not in handlers.
type ProjectService interface {
	CreateProject(ctx context.Context, name string) (model.Project, error)
	GetProject(ctx context.Context, id int64) (model.Project, error)
	ListProjects(ctx context.Context, rawQuery map[string]string) (pagination.PageResult[model.Project], error)
	ArchiveProject(ctx context.Context, id int64) (model.Project, error)
}

// TaskService defines task-oriented use cases.
type TaskService interface {
	CreateTask(ctx context.Context, projectID int64, title string, priority int, dueDate *time.Time) (model.Task, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	ListTasks(ctx context.Context, projectID int64, rawQuery map[string]string) (pagination.PageResult[model.Task], error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	// SweepOverdue marks pending tasks past their due date. Invoked by the
	// scheduler, not by clients.
	SweepOverdue(ctx context.Context) (int64, error)
}
