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

// Filter and sort vocabulary for project listings. Keys must stay in sync
// with the constraints the project service hands to pagination.Normalize.
var (
	projectFilterPredicates = map[string]string{
		"name":     "name = %s",
		"archived": "archived = %s",
	}
	projectSortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"created_at": "created_at",
	}
)

type projectRepository struct{ pool *pgxpool.Pool }

func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO projects (name) VALUES ($1)
		 RETURNING id, name, archived, created_at, updated_at`,
		p.Name,
	)
	var out model.Project
	if err := row.Scan(&out.ID, &out.Name, &out.Archived, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Project{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, name, archived, created_at, updated_at FROM projects WHERE id = $1`, id,
	)
	var out model.Project
	if err := row.Scan(&out.ID, &out.Name, &out.Archived, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, repository.ErrNotFound
		}
		return model.Project{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *projectRepository) List(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[model.Project], error) {
	var zero pagination.PageResult[model.Project]
	if err := ensurePool(r.pool); err != nil {
		return zero, err
	}
	d := pagination.Build(req)
	tail, args := listQuery(nil, nil, d, projectFilterPredicates, projectSortColumns)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, name, archived, created_at, updated_at, COUNT(*) OVER() AS total
		 FROM projects`+tail, args...,
	)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	defer rows.Close()

	items := make([]model.Project, 0, d.Limit)
	total := 0
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Archived, &p.CreatedAt, &p.UpdatedAt, &total); err != nil {
			return zero, repository.MapPgError(err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return zero, repository.MapPgError(err)
	}
	// A window past the last row yields no rows, so the window total above
	// never arrives. Count separately to keep the metadata truthful.
	if len(items) == 0 && d.Offset > 0 {
		whereTail, whereArgs := countQuery(nil, nil, d, projectFilterPredicates)
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+whereTail, whereArgs...).Scan(&total); err != nil {
			return zero, repository.MapPgError(err)
		}
	}
	return pagination.Assemble(items, total, req)
}

func (r *projectRepository) Archive(ctx context.Context, id int64) (model.Project, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Project{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE projects SET archived = TRUE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, archived, created_at, updated_at`, id,
	)
	var out model.Project
	if err := row.Scan(&out.ID, &out.Name, &out.Archived, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, repository.ErrNotFound
		}
		return model.Project{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.ProjectRepository = (*projectRepository)(nil)
