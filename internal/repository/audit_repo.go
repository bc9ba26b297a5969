package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	before, err := marshalOptional(entry.Before)
	if err != nil {
		return fmt.Errorf("marshal before data: %w", err)
	}
	after, err := marshalOptional(entry.After)
	if err != nil {
		return fmt.Errorf("marshal after data: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (action, occurred_at, actor_username, actor_role, actor_ip,
		  status, resource, before_data, after_data, error_text)
		 VALUES ($1, $2::timestamptz, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.Action, entry.OccurredAt,
		entry.Actor.Username, entry.Actor.Role, entry.Actor.IP,
		entry.Status, entry.Resource, before, after, entry.Error)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

// auditFilter accumulates WHERE clauses with positional arguments.
type auditFilter struct {
	clauses []string
	args    []any
}

func (f *auditFilter) add(clause string, arg any) {
	f.args = append(f.args, arg)
	f.clauses = append(f.clauses, fmt.Sprintf(clause, len(f.args)))
}

func (f *auditFilter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(f.clauses, " AND ")
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	var f auditFilter
	if v := strings.TrimSpace(query.Action); v != "" {
		f.add("lower(action) = lower($%d)", v)
	}
	if v := strings.TrimSpace(query.Username); v != "" {
		f.add("actor_username = $%d", v)
	}
	if v := strings.TrimSpace(query.Status); v != "" {
		f.add("lower(status) = lower($%d)", v)
	}
	if v := strings.TrimSpace(query.Resource); v != "" {
		f.add("resource = $%d", v)
	}
	if v := strings.TrimSpace(query.From); v != "" {
		f.add("occurred_at >= $%d::timestamptz", v)
	}
	if v := strings.TrimSpace(query.To); v != "" {
		f.add("occurred_at <= $%d::timestamptz", v)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_entries "+f.where(), f.args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}
	meta := pageMeta(query.Page, query.Limit, total)

	args := append(f.args, query.Limit, (query.Page-1)*query.Limit)
	dataQuery := fmt.Sprintf(
		`SELECT action, occurred_at, actor_username, actor_role, actor_ip,
		        status, resource, before_data, after_data, error_text
		 FROM audit_entries %s
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT $%d OFFSET $%d`, f.where(), len(f.args)+1, len(f.args)+2)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		var occurredAt time.Time
		var before, after []byte

		if err := rows.Scan(
			&e.Action, &occurredAt,
			&e.Actor.Username, &e.Actor.Role, &e.Actor.IP,
			&e.Status, &e.Resource, &before, &after, &e.Error,
		); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}

		e.OccurredAt = occurredAt.UTC().Format(time.RFC3339Nano)
		e.Before = unmarshalOptional(before)
		e.After = unmarshalOptional(after)
		entries = append(entries, e)
	}

	return entries, meta, rows.Err()
}

func pageMeta(page, limit, total int) model.Meta {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func marshalOptional(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalOptional(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
