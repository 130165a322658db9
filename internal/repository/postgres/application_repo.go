package postgres

import (
	"context"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, owner_id, company, position, location, notes, status, salary_min, salary_max,
	job_url, contact_name, contact_email, contact_phone, contact_id, application_deadline, applied_at, updated_at`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.OwnerID, &app.Company, &app.Position, &app.Location, &app.Notes, &app.Status,
		&app.SalaryMin, &app.SalaryMax, &app.JobURL, &app.ContactName, &app.ContactEmail, &app.ContactPhone,
		&app.ContactID, &app.ApplicationDeadline, &app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// contactRef rejects malformed contact ids before they reach the uuid column.
func contactRef(id *string) (*string, error) {
	if id != nil && !validID(*id) {
		return nil, domain.ErrReferenceNotFound
	}
	return id, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	contactID, err := contactRef(app.ContactID)
	if err != nil {
		return err
	}
	query := `INSERT INTO applications (owner_id, company, position, location, notes, status, salary_min, salary_max,
              job_url, contact_name, contact_email, contact_phone, contact_id, application_deadline, applied_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	err = r.db.QueryRow(ctx, query,
		app.OwnerID, app.Company, app.Position, app.Location, app.Notes, app.Status, app.SalaryMin, app.SalaryMax,
		app.JobURL, app.ContactName, app.ContactEmail, app.ContactPhone, contactID, app.ApplicationDeadline,
		app.AppliedAt, app.UpdatedAt,
	).Scan(&app.ID)
	return mapError(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	app, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE owner_id = $1 ORDER BY applied_at DESC, created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *applicationRepo) ListByContact(ctx context.Context, contactID, ownerID string) ([]domain.Application, error) {
	if !validID(contactID) {
		return []domain.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE contact_id = $1 AND owner_id = $2
              ORDER BY applied_at DESC, created_at DESC`
	return r.list(ctx, query, contactID, ownerID)
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	if !validID(app.ID) {
		return domain.ErrNotFound
	}
	contactID, err := contactRef(app.ContactID)
	if err != nil {
		return err
	}
	query := `UPDATE applications SET company = $3, position = $4, location = $5, notes = $6, status = $7,
              salary_min = $8, salary_max = $9, job_url = $10, contact_name = $11, contact_email = $12,
              contact_phone = $13, contact_id = $14, application_deadline = $15, applied_at = $16, updated_at = $17
              WHERE id = $1 AND owner_id = $2`
	return execAffected(r.db.Exec(ctx, query,
		app.ID, app.OwnerID, app.Company, app.Position, app.Location, app.Notes, app.Status,
		app.SalaryMin, app.SalaryMax, app.JobURL, app.ContactName, app.ContactEmail,
		app.ContactPhone, contactID, app.ApplicationDeadline, app.AppliedAt, app.UpdatedAt,
	))
}

func (r *applicationRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	return execAffected(r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *applicationRepo) CountByStatus(ctx context.Context, ownerID string) (map[domain.PipelineStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	return countStatuses(rows)
}
