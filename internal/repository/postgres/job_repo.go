package postgres

import (
	"context"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, owner_id, company, position, location, notes, status, salary_min, salary_max,
	job_url, contact_name, contact_email, contact_phone, applied_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.OwnerID, &job.Company, &job.Position, &job.Location, &job.Notes, &job.Status,
		&job.SalaryMin, &job.SalaryMax, &job.JobURL, &job.ContactName, &job.ContactEmail, &job.ContactPhone,
		&job.AppliedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (owner_id, company, position, location, notes, status, salary_min, salary_max,
              job_url, contact_name, contact_email, contact_phone, applied_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.OwnerID, job.Company, job.Position, job.Location, job.Notes, job.Status, job.SalaryMin, job.SalaryMax,
		job.JobURL, job.ContactName, job.ContactEmail, job.ContactPhone, job.AppliedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE owner_id = $1 ORDER BY applied_at DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	if !validID(job.ID) {
		return domain.ErrNotFound
	}
	query := `UPDATE jobs SET company = $3, position = $4, location = $5, notes = $6, status = $7,
              salary_min = $8, salary_max = $9, job_url = $10, contact_name = $11, contact_email = $12,
              contact_phone = $13, applied_at = $14, updated_at = $15
              WHERE id = $1 AND owner_id = $2`
	return execAffected(r.db.Exec(ctx, query,
		job.ID, job.OwnerID, job.Company, job.Position, job.Location, job.Notes, job.Status,
		job.SalaryMin, job.SalaryMax, job.JobURL, job.ContactName, job.ContactEmail,
		job.ContactPhone, job.AppliedAt, job.UpdatedAt,
	))
}

// Delete removes the job's interviews and then the job in one transaction.
func (r *jobRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM interviews WHERE job_id IN (SELECT id FROM jobs WHERE id = $1 AND owner_id = $2)`, id, ownerID)
	if err != nil {
		return err
	}
	if err := execAffected(tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) CountByStatus(ctx context.Context, ownerID string) (map[domain.PipelineStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	return countStatuses(rows)
}
