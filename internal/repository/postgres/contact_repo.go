package postgres

import (
	"context"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, owner_id, first_name, last_name, email, phone, job_title, company, linkedin, notes, created_at, updated_at`

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.JobTitle,
		&c.Company, &c.LinkedIn, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) Create(ctx context.Context, c *domain.Contact) error {
	query := `INSERT INTO contacts (owner_id, first_name, last_name, email, phone, job_title, company, linkedin, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone, c.JobTitle, c.Company, c.LinkedIn, c.Notes,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return mapError(err)
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	c, err := scanContact(r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *contactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE owner_id = $1 ORDER BY first_name ASC, created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *contactRepo) Update(ctx context.Context, c *domain.Contact) error {
	if !validID(c.ID) {
		return domain.ErrNotFound
	}
	query := `UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6, job_title = $7,
              company = $8, linkedin = $9, notes = $10, updated_at = $11
              WHERE id = $1 AND owner_id = $2`
	return execAffected(r.db.Exec(ctx, query,
		c.ID, c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone, c.JobTitle, c.Company, c.LinkedIn, c.Notes, c.UpdatedAt,
	))
}

// Delete detaches referencing applications and removes the contact in one transaction.
func (r *contactRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `UPDATE applications SET contact_id = NULL, updated_at = NOW()
		WHERE contact_id IN (SELECT id FROM contacts WHERE id = $1 AND owner_id = $2)`, id, ownerID)
	if err != nil {
		return err
	}
	if err := execAffected(tx.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
