package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-backend/internal/model"
	"github.com/taskhive/taskhive-backend/internal/pagination"
	"github.com/taskhive/taskhive-backend/internal/repository"
)

// Filter and sort vocabulary for task listings. Keys must stay in sync with
// the constraints the task service hands to pagination.Normalize.
var (
	taskFilterPredicates = map[string]string{
		"status":     "status = %s",
		"priority":   "priority = %s",
		"done":       "done = %s",
		"due_before": "due_date < %s",
	}
	taskSortColumns = map[string]string{
		"id":         "id",
		"title":      "title",
		"priority":   "priority",
		"due_date":   "due_date",
		"created_at": "created_at",
	}
)

const taskColumns = `id, project_id, title, status, priority, done, due_date, created_at, updated_at`

type taskRepository struct{ pool *pgxpool.Pool }

func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.Priority, &t.Done,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *taskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Task{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO tasks (project_id, title, status, priority, due_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+taskColumns,
		t.ProjectID, t.Title, t.Status, t.Priority, t.DueDate,
	)
	out, err := scanTask(row)
	if err != nil {
		return model.Task{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (model.Task, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Task{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	out, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, repository.ErrNotFound
		}
		return model.Task{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID int64, req pagination.PageRequest) (pagination.PageResult[model.Task], error) {
	var zero pagination.PageResult[model.Task]
	if err := ensurePool(r.pool); err != nil {
		return zero, err
	}
	d := pagination.Build(req)
	tail, args := listQuery(
		[]string{"project_id = $1"}, []any{projectID},
		d, taskFilterPredicates, taskSortColumns,
	)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+taskColumns+`, COUNT(*) OVER() AS total FROM tasks`+tail, args...,
	)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	defer rows.Close()

	items := make([]model.Task, 0, d.Limit)
	total := 0
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.Priority, &t.Done,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt, &total); err != nil {
			return zero, repository.MapPgError(err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return zero, repository.MapPgError(err)
	}
	// A window past the last row yields no rows, so the window total above
	// never arrives. Count separately to keep the metadata truthful.
	if len(items) == 0 && d.Offset > 0 {
		whereTail, whereArgs := countQuery([]string{"project_id = $1"}, []any{projectID}, d, taskFilterPredicates)
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+whereTail, whereArgs...).Scan(&total); err != nil {
			return zero, repository.MapPgError(err)
		}
	}
	return pagination.Assemble(items, total, req)
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, status string) (model.Task, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Task{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE tasks
		 SET status = $2, done = ($2 = 'done'), updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+taskColumns,
		id, status,
	)
	out, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, repository.ErrNotFound
		}
		return model.Task{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *taskRepository) MarkOverdue(ctx context.Context) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE tasks
		 SET status = 'overdue', updated_at = NOW()
		 WHERE status = 'pending' AND due_date IS NOT NULL AND due_date < NOW()`,
	)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.TaskRepository = (*taskRepository)(nil)
