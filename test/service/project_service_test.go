package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive-backend/internal/cache"
	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
	"github.com/taskhive/taskhive-backend/internal/repository"
	"github.com/taskhive/taskhive-backend/internal/service"
)

type fakeProjectRepo struct {
	nextID    int64
	items     map[int64]model.Project
	createErr error
	lastReq   pagination.PageRequest // capture last request for normalization tests
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{nextID: 1, items: map[int64]model.Project{}}
}

func (f *fakeProjectRepo) Create(_ context.Context, p model.Project) (model.Project, error) {
	if f.createErr != nil {
		return model.Project{}, f.createErr
	}
	p.ID = f.nextID
	f.nextID++
	f.items[p.ID] = p
	return p, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (model.Project, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Project{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeProjectRepo) List(_ context.Context, req pagination.PageRequest) (pagination.PageResult[model.Project], error) {
	f.lastReq = req
	var items []model.Project
	for _, v := range f.items {
		items = append(items, v)
	}
	return pagination.Assemble(items, len(items), req)
}

func (f *fakeProjectRepo) Archive(_ context.Context, id int64) (model.Project, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Project{}, repository.ErrNotFound
	}
	it.Archived = true
	f.items[id] = it
	return it, nil
}

var _ repository.ProjectRepository = (*fakeProjectRepo)(nil)

func noopCache() *cache.Store {
	return cache.New(nil, zerolog.New(io.Discard))
}

func newProjectService(repo repository.ProjectRepository) service.ProjectService {
	return service.NewProjectService(repo, noopCache(), zerolog.New(io.Discard))
}

func TestProjectService_CreateProject_Validation(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())

	cases := []struct {
		name      string
		input     string
		wantErr   bool
		wantField string
	}{
		{"empty", "", true, "name"},
		{"spaces", "   ", true, "name"},
		{"too short", "A", true, "name"},
		{"too long", string(make([]byte, 81)), true, "name"},
		{"ok", "Platform", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProject(context.Background(), tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr {
				if !errors.Is(err, service.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				fields := service.FieldErrors(err)
				found := false
				for _, f := range fields {
					if f.Field == tc.wantField {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("expected field error for %s, got %+v", tc.wantField, fields)
				}
			}
		})
	}
}

func TestProjectService_CreateProject_DuplicatePropagates(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.createErr = repository.ErrAlreadyExists
	svc := newProjectService(repo)
	_, err := svc.CreateProject(context.Background(), "Platform")
	if err == nil || err != repository.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestProjectService_GetProject_InvalidID(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())
	_, err := svc.GetProject(context.Background(), 0)
	if err == nil || !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestProjectService_ListProjects_Normalization(t *testing.T) {
	repo := newFakeProjectRepo()
	_, _ = repo.Create(context.Background(), model.Project{Name: "A"})
	_, _ = repo.Create(context.Background(), model.Project{Name: "B"})
	svc := newProjectService(repo)

	_, err := svc.ListProjects(context.Background(), map[string]string{"pageSize": "10000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastReq.Page != 1 {
		t.Fatalf("expected normalized page=1 got %d", repo.lastReq.Page)
	}
	if repo.lastReq.PageSize != 100 { // maxPageSize from service constraints
		t.Fatalf("expected clamped pageSize=100 got %d", repo.lastReq.PageSize)
	}
}

func TestProjectService_ListProjects_RejectsBadQuery(t *testing.T) {
	svc := newProjectService(newFakeProjectRepo())

	cases := []struct {
		name string
		raw  map[string]string
		want error
	}{
		{"bad page", map[string]string{"page": "-1"}, pagination.ErrInvalidPage},
		{"bad sort", map[string]string{"sortField": "password"}, pagination.ErrInvalidSortField},
		{"bad filter value", map[string]string{"archived": "maybe"}, pagination.ErrInvalidFilterValue},
		{"unknown filter", map[string]string{"owner": "alice"}, pagination.ErrInvalidFilterField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ListProjects(context.Background(), tc.raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, pagination.ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery marker, got %v", err)
			}
		})
	}
}

func TestProjectService_ArchiveProject(t *testing.T) {
	repo := newFakeProjectRepo()
	p, _ := repo.Create(context.Background(), model.Project{Name: "Old"})
	svc := newProjectService(repo)

	got, err := svc.ArchiveProject(context.Background(), p.ID)
	if err != nil || !got.Archived {
		t.Fatalf("expected archived project, got %+v err=%v", got, err)
	}

	_, err = svc.ArchiveProject(context.Background(), 404)
	if err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
