package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive-backend/internal/cache"
	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
	"github.com/taskhive/taskhive-backend/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	cache    *cache.Store
	log      zerolog.Logger
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, store *cache.Store, logger zerolog.Logger) TaskService {
	l := logger.With().Str("module", "service").Str("component", "task").Logger()
	return &taskService{tasks: tasks, projects: projects, cache: store, log: l}
}

func (s *taskService) CreateTask(ctx context.Context, projectID int64, title string, priority int, dueDate *time.Time) (model.Task, error) {
	start := time.Now()
	rawTitle := title
	title = strings.TrimSpace(title)

	var ferrs []FieldError
	if projectID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "project_id", Message: "must be > 0"})
	}
	if title == "" {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "must not be empty"})
	} else if ln := len([]rune(title)); ln > 120 {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "length must be <= 120"})
	}
	if priority < 1 || priority > 5 {
		ferrs = append(ferrs, FieldError{Field: "priority", Message: "must be between 1 and 5"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Str("title_raw", rawTitle).Msg("task validation failed")
		return model.Task{}, err
	}

	// Existence check improves client UX vs deferring to FK violation, and
	// lets us reject archived projects explicitly.
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Task{}, newInvalidInput([]FieldError{{Field: "project_id", Message: "project does not exist"}})
		}
		return model.Task{}, err
	}
	if project.Archived {
		return model.Task{}, newInvalidInput([]FieldError{{Field: "project_id", Message: "project is archived"}})
	}

	out, err := s.tasks.Create(ctx, model.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    model.TaskStatusPending,
		Priority:  priority,
		DueDate:   dueDate,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("project_id", projectID).Str("title", title).Msg("create task failed")
		return model.Task{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("task_id", out.ID).Msg("task created")
	return out, nil
}

func (s *taskService) GetTask(ctx context.Context, id int64) (model.Task, error) {
	if id <= 0 {
		return model.Task{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	key := s.cache.Key("task", id)
	var cached model.Task
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	out, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *taskService) ListTasks(ctx context.Context, projectID int64, rawQuery map[string]string) (pagination.PageResult[model.Task], error) {
	var zero pagination.PageResult[model.Task]
	if projectID <= 0 {
		return zero, newInvalidInput([]FieldError{{Field: "project_id", Message: "must be > 0"}})
	}
	req, err := pagination.Normalize(rawQuery, taskListConstraints())
	if err != nil {
		s.log.Debug().Err(err).Int64("project_id", projectID).Msg("task list query rejected")
		return zero, err
	}
	res, err := s.tasks.ListByProject(ctx, projectID, req)
	if err != nil {
		s.log.Error().Err(err).Int64("project_id", projectID).Int("page", req.Page).Int("page_size", req.PageSize).Msg("list tasks failed")
		return zero, err
	}
	return res, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, id int64, status string) (model.Task, error) {
	status = strings.ToLower(strings.TrimSpace(status))

	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if !isValidTaskStatus(status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of pending, in_progress, done, overdue"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Task{}, err
	}

	out, err := s.tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		if err != repository.ErrNotFound {
			s.log.Error().Err(err).Int64("task_id", id).Str("status", status).Msg("update task status failed")
		}
		return model.Task{}, err
	}
	s.cache.Invalidate(ctx, s.cache.Key("task", id))
	return out, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if err != repository.ErrNotFound {
			s.log.Error().Err(err).Int64("task_id", id).Msg("delete task failed")
		}
		return err
	}
	s.cache.Invalidate(ctx, s.cache.Key("task", id))
	s.log.Info().Int64("task_id", id).Msg("task deleted")
	return nil
}

func (s *taskService) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.tasks.MarkOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int64("tasks", n).Msg("tasks marked overdue")
	}
	return n, nil
}
