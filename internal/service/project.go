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

// projectService holds project use-case logic: validation + orchestration,
// no transport / SQL details.
type projectService struct {
	repo  repository.ProjectRepository
	cache *cache.Store
	log   zerolog.Logger
}

func NewProjectService(repo repository.ProjectRepository, store *cache.Store, logger zerolog.Logger) ProjectService {
	l := logger.With().Str("module", "service").Str("component", "project").Logger()
	return &projectService{repo: repo, cache: store, log: l}
}

func (s *projectService) CreateProject(ctx context.Context, name string) (model.Project, error) {
	start := time.Now()
	original := name
	name = strings.TrimSpace(name)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else {
		if ln := len([]rune(name)); ln < 2 || ln > 80 {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 80"})
		}
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", original).Interface("field_errors", ferrs).Msg("project validation failed")
		return model.Project{}, err
	}

	out, err := s.repo.Create(ctx, model.Project{Name: name})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create project failed")
		return model.Project{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("project_id", out.ID).Msg("project created")
	return out, nil
}

func (s *projectService) GetProject(ctx context.Context, id int64) (model.Project, error) {
	if id <= 0 {
		return model.Project{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	key := s.cache.Key("project", id)
	var cached model.Project
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	out, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *projectService) ListProjects(ctx context.Context, rawQuery map[string]string) (pagination.PageResult[model.Project], error) {
	var zero pagination.PageResult[model.Project]
	req, err := pagination.Normalize(rawQuery, projectListConstraints())
	if err != nil {
		s.log.Debug().Err(err).Msg("project list query rejected")
		return zero, err
	}
	res, err := s.repo.List(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Int("page", req.Page).Int("page_size", req.PageSize).Msg("list projects failed")
		return zero, err
	}
	return res, nil
}

func (s *projectService) ArchiveProject(ctx context.Context, id int64) (model.Project, error) {
	if id <= 0 {
		return model.Project{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	out, err := s.repo.Archive(ctx, id)
	if err != nil {
		if err != repository.ErrNotFound {
			s.log.Error().Err(err).Int64("project_id", id).Msg("archive project failed")
		}
		return model.Project{}, err
	}
	s.cache.Invalidate(ctx, s.cache.Key("project", id))
	s.log.Info().Int64("project_id", id).Msg("project archived")
	return out, nil
}
