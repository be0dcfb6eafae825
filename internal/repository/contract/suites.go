// Package contract defines repository test suites that any implementation
// must satisfy. Concrete packages provide factories; the suites own the
// assertions, so Postgres and future implementations stay interchangeable.
package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
	"github.com/taskhive/taskhive-backend/internal/repository"
)

type ProjectFactory func(t *testing.T) (repository.ProjectRepository, func())

type TaskFactory func(t *testing.T) (repo repository.TaskRepository, createProject func(ctx context.Context, name string) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, projects repository.ProjectRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func listPage(page, size int) pagination.PageRequest {
	return pagination.PageRequest{Page: page, PageSize: size}
}

func RunProjectRepositoryContract(t *testing.T, makeRepo ProjectFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Project{Name: "Platform"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name || got.Archived {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Project{Name: "Twice"}); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		_, err := repo.Create(ctx, model.Project{Name: "Twice"})
		if err != repository.ErrAlreadyExists {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, model.Project{Name: fmt.Sprintf("P-%02d", i)}); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}
		res, err := repo.List(ctx, listPage(2, 3))
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if res.TotalCount != 7 {
			t.Fatalf("expected total 7, got %d", res.TotalCount)
		}
		if len(res.Items) != 3 || res.Page != 2 || res.PageSize != 3 {
			t.Fatalf("unexpected window: %+v", res)
		}
	})

	t.Run("list_total_past_end", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 4; i++ {
			if _, err := repo.Create(ctx, model.Project{Name: fmt.Sprintf("Q-%02d", i)}); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}
		// A window past the last row still reports the true total.
		res, err := repo.List(ctx, listPage(5, 3))
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(res.Items) != 0 {
			t.Fatalf("expected empty window, got %d items", len(res.Items))
		}
		if res.TotalCount != 4 {
			t.Fatalf("expected total 4 for empty window, got %d", res.TotalCount)
		}
	})

	t.Run("list_filter_and_sort", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, _ := repo.Create(ctx, model.Project{Name: "Alpha"})
		if _, err := repo.Archive(ctx, a.ID); err != nil {
			t.Fatalf("archive failed: %v", err)
		}
		if _, err := repo.Create(ctx, model.Project{Name: "Beta"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		req := pagination.PageRequest{
			Page: 1, PageSize: 10,
			Sort:    &pagination.SortSpec{Field: "name", Direction: pagination.Desc},
			Filters: map[string]any{"archived": false},
		}
		res, err := repo.List(ctx, req)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if res.TotalCount != 1 || len(res.Items) != 1 || res.Items[0].Name != "Beta" {
			t.Fatalf("unexpected filtered result: %+v", res)
		}
	})

	t.Run("archive", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p, err := repo.Create(ctx, model.Project{Name: "ToArchive"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.Archive(ctx, p.ID)
		if err != nil || !got.Archived {
			t.Fatalf("archive failed: %+v err=%v", got, err)
		}
	})
}

func RunTaskRepositoryContract(t *testing.T, makeRepo TaskFactory) {
	t.Helper()

	seed := func(t *testing.T, createProject func(ctx context.Context, name string) (int64, error)) int64 {
		t.Helper()
		ctx := context.Background()
		pid, err := createProject(ctx, "Tasks-"+t.Name())
		if err != nil {
			t.Fatalf("create project failed: %v", err)
		}
		return pid
	}

	t.Run("create_get_delete", func(t *testing.T) {
		repo, createProject, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seed(t, createProject)

		created, err := repo.Create(ctx, model.Task{ProjectID: pid, Title: "Write docs", Status: model.TaskStatusPending, Priority: 2})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil || got.Title != "Write docs" || got.Priority != 2 {
			t.Fatalf("get mismatch: %+v err=%v", got, err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("update_status", func(t *testing.T) {
		repo, createProject, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seed(t, createProject)

		created, err := repo.Create(ctx, model.Task{ProjectID: pid, Title: "Ship it", Status: model.TaskStatusPending, Priority: 4})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.UpdateStatus(ctx, created.ID, model.TaskStatusDone)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if got.Status != model.TaskStatusDone || !got.Done {
			t.Fatalf("expected done status to set the done flag: %+v", got)
		}
	})

	t.Run("create_fk_violation", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), model.Task{ProjectID: 999999, Title: "Orphan", Status: model.TaskStatusPending, Priority: 1})
		if err != repository.ErrConflict {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("list_window_and_filters", func(t *testing.T) {
		repo, createProject, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seed(t, createProject)

		for i := 0; i < 5; i++ {
			status := model.TaskStatusPending
			if i%2 == 0 {
				status = model.TaskStatusDone
			}
			task := model.Task{ProjectID: pid, Title: fmt.Sprintf("T-%d", i), Status: status, Priority: i%5 + 1}
			if _, err := repo.Create(ctx, task); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
		}

		req := pagination.PageRequest{
			Page: 1, PageSize: 10,
			Sort:    &pagination.SortSpec{Field: "priority", Direction: pagination.Desc},
			Filters: map[string]any{"status": model.TaskStatusDone},
		}
		res, err := repo.ListByProject(ctx, pid, req)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if res.TotalCount != 3 || len(res.Items) != 3 {
			t.Fatalf("expected 3 done tasks, got %+v", res)
		}
		for i := 1; i < len(res.Items); i++ {
			if res.Items[i-1].Priority < res.Items[i].Priority {
				t.Fatalf("not sorted by priority desc: %+v", res.Items)
			}
		}
	})

	t.Run("mark_overdue", func(t *testing.T) {
		repo, createProject, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pid := seed(t, createProject)

		past := time.Now().Add(-48 * time.Hour)
		future := time.Now().Add(48 * time.Hour)
		if _, err := repo.Create(ctx, model.Task{ProjectID: pid, Title: "Late", Status: model.TaskStatusPending, Priority: 3, DueDate: &past}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if _, err := repo.Create(ctx, model.Task{ProjectID: pid, Title: "On time", Status: model.TaskStatusPending, Priority: 3, DueDate: &future}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		n, err := repo.MarkOverdue(ctx)
		if err != nil {
			t.Fatalf("mark overdue failed: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 task marked, got %d", n)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit", func(t *testing.T) {
		tx, projects, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var id int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			p, err := projects.Create(ctx, model.Project{Name: "Committed"})
			id = p.ID
			return err
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}
		if _, err := projects.GetByID(ctx, id); err != nil {
			t.Fatalf("expected committed row: %v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, projects, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var id int64
		sentinel := fmt.Errorf("abort")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			p, err := projects.Create(ctx, model.Project{Name: "RolledBack"})
			if err != nil {
				return err
			}
			id = p.ID
			return sentinel
		})
		if err == nil {
			t.Fatalf("expected tx error")
		}
		if _, err := projects.GetByID(ctx, id); err != repository.ErrNotFound {
			t.Fatalf("expected rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
