package service

import (
	"strings"

	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
)

// Default page window shared by both resources; per-resource allow-lists
// differ below.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// projectListConstraints bounds what clients may ask of GET /projects.
// The filter keys mirror the predicate map in the postgres repository.
func projectListConstraints() pagination.Constraints {
	return pagination.Constraints{
		DefaultPageSize:   defaultPageSize,
		MaxPageSize:       maxPageSize,
		AllowedSortFields: []string{"id", "name", "created_at"},
		AllowedFilterFields: map[string]pagination.FieldType{
			"name":     pagination.String,
			"archived": pagination.Boolean,
		},
	}
}

// taskListConstraints bounds what clients may ask of GET /projects/:id/tasks.
func taskListConstraints() pagination.Constraints {
	return pagination.Constraints{
		DefaultPageSize:   defaultPageSize,
		MaxPageSize:       maxPageSize,
		AllowedSortFields: []string{"id", "title", "priority", "due_date", "created_at"},
		AllowedFilterFields: map[string]pagination.FieldType{
			"status":     pagination.String,
			"priority":   pagination.Number,
			"done":       pagination.Boolean,
			"due_before": pagination.Date,
		},
	}
}

func isValidTaskStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusDone, model.TaskStatusOverdue:
		return true
	default:
		return false
	}
}
