package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

const skillColumns = `id, name, category, level, icon, years_of_experience, projects, sort_order, visible, created_at`

type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills`
	if filter.VisibleOnly {
		query += ` WHERE visible`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) Get(ctx context.Context, id string) (model.Skill, error) {
	if !validID(id) {
		return model.Skill{}, model.ErrNotFound
	}
	s, err := scanSkill(r.pool.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Skill{}, model.ErrNotFound
	}
	if err != nil {
		return model.Skill{}, fmt.Errorf("get skill: %w", err)
	}
	return s, nil
}

func (r *SkillRepository) Create(ctx context.Context, s model.Skill) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO skills (`+skillColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.Category, s.Level, s.Icon, s.YearsOfExperience, s.Projects, s.Order, s.Visible, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) Update(ctx context.Context, s model.Skill) error {
	if !validID(s.ID) {
		return model.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE skills SET
		   name = $2, category = $3, level = $4, icon = $5, years_of_experience = $6,
		   projects = $7, sort_order = $8, visible = $9
		 WHERE id = $1`,
		s.ID, s.Name, s.Category, s.Level, s.Icon, s.YearsOfExperience, s.Projects, s.Order, s.Visible)
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "skills", id)
}

func (r *SkillRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, "skills")
}

func scanSkill(row pgx.Row) (model.Skill, error) {
	var s model.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.Icon, &s.YearsOfExperience,
		&s.Projects, &s.Order, &s.Visible, &s.CreatedAt)
	return s, err
}
