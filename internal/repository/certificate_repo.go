package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

const certificateColumns = `id, name, issuer, issued_date, description, credential_id, verify_url,
	image_url, status, category, priority, visible, created_at`

type CertificateRepository struct {
	pool *pgxpool.Pool
}

func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

func (r *CertificateRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates`
	if filter.VisibleOnly {
		query += ` WHERE visible`
	}
	query += ` ORDER BY priority ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	certificates := make([]model.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		certificates = append(certificates, c)
	}
	return certificates, rows.Err()
}

func (r *CertificateRepository) Get(ctx context.Context, id string) (model.Certificate, error) {
	if !validID(id) {
		return model.Certificate{}, model.ErrNotFound
	}
	c, err := scanCertificate(r.pool.QueryRow(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Certificate{}, model.ErrNotFound
	}
	if err != nil {
		return model.Certificate{}, fmt.Errorf("get certificate: %w", err)
	}
	return c, nil
}

func (r *CertificateRepository) Create(ctx context.Context, c model.Certificate) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO certificates (`+certificateColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.Name, c.Issuer, c.Date, c.Description, c.CredentialID, c.VerifyURL,
		c.ImageURL, c.Status, c.Category, c.Priority, c.Visible, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

func (r *CertificateRepository) Update(ctx context.Context, c model.Certificate) error {
	if !validID(c.ID) {
		return model.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE certificates SET
		   name = $2, issuer = $3, issued_date = $4, description = $5, credential_id = $6,
		   verify_url = $7, image_url = $8, status = $9, category = $10, priority = $11, visible = $12
		 WHERE id = $1`,
		c.ID, c.Name, c.Issuer, c.Date, c.Description, c.CredentialID,
		c.VerifyURL, c.ImageURL, c.Status, c.Category, c.Priority, c.Visible)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "certificates", id)
}

func (r *CertificateRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.pool, "certificates")
}

func scanCertificate(row pgx.Row) (model.Certificate, error) {
	var c model.Certificate
	err := row.Scan(&c.ID, &c.Name, &c.Issuer, &c.Date, &c.Description, &c.CredentialID, &c.VerifyURL,
		&c.ImageURL, &c.Status, &c.Category, &c.Priority, &c.Visible, &c.CreatedAt)
	return c, err
}
