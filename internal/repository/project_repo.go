package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

const projectColumns = `id, title, tagline, description, long_description, tech, features,
	demo_url, github_url, image_url, video_url, year, category, status,
	featured, visible, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if filter.VisibleOnly {
		query += ` WHERE visible`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (model.Project, error) {
	if !validID(id) {
		return model.Project{}, model.ErrNotFound
	}
	p, err := scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.Title, p.Tagline, p.Description, p.LongDescription, p.Tech, p.Features,
		p.DemoURL, p.GithubURL, p.ImageURL, p.VideoURL, p.Year, p.Category, p.Status,
		p.Featured, p.Visible, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, p model.Project) error {
	if !validID(p.ID) {
		return model.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET
		   title = $2, tagline = $3, description = $4, long_description = $5, tech = $6, features = $7,
		   demo_url = $8, github_url = $9, image_url = $10, video_url = $11, year = $12,
		   category = $13, status = $14, featured = $15, visible = $16, updated_at = $17
		 WHERE id = $1`,
		p.ID, p.Title, p.Tagline, p.Description, p.LongDescription, p.Tech, p.Features,
		p.DemoURL, p.GithubURL, p.ImageURL, p.VideoURL, p.Year,
		p.Category, p.Status, p.Featured, p.Visible, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "projects", id)
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, "projects")
}

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Tagline, &p.Description, &p.LongDescription, &p.Tech, &p.Features,
		&p.DemoURL, &p.GithubURL, &p.ImageURL, &p.VideoURL, &p.Year, &p.Category, &p.Status,
		&p.Featured, &p.Visible, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
