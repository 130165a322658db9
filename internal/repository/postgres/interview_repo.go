package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Interviews carry no owner column; every read joins the parent job.
const interviewSelect = `SELECT i.id, i.job_id, i.date, i.time, i.type, i.location, i.notes, i.duration, i.round,
	i.status, i.created_at, i.updated_at, j.owner_id, j.company, j.position
	FROM interviews i JOIN jobs j ON j.id = i.job_id`

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	summary := &domain.JobSummary{}
	err := row.Scan(
		&iv.ID, &iv.JobID, &iv.Date, &iv.Time, &iv.Type, &iv.Location, &iv.Notes, &iv.Duration, &iv.Round,
		&iv.Status, &iv.CreatedAt, &iv.UpdatedAt, &iv.OwnerID, &summary.Company, &summary.Position,
	)
	if err != nil {
		return nil, err
	}
	summary.ID = iv.JobID
	iv.Job = summary
	return &iv, nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	iv, err := scanInterview(r.db.QueryRow(ctx, interviewSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return iv, nil
}

func (r *interviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Interview, error) {
	return r.list(ctx, interviewSelect+` WHERE j.owner_id = $1 ORDER BY i.date ASC, i.created_at ASC`, ownerID)
}

func (r *interviewRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Interview, error) {
	if !validID(jobID) {
		return []domain.Interview{}, nil
	}
	return r.list(ctx, interviewSelect+` WHERE i.job_id = $1 ORDER BY i.date ASC, i.created_at ASC`, jobID)
}

func (r *interviewRepo) ListUpcoming(ctx context.Context, ownerID string, from time.Time, limit int) ([]domain.Interview, error) {
	query := interviewSelect + ` WHERE j.owner_id = $1 AND i.date >= $2 AND i.status IN ($3, $4)
		ORDER BY i.date ASC, i.created_at ASC LIMIT $5`
	return r.list(ctx, query, ownerID, from, domain.InterviewScheduled, domain.InterviewRescheduled, limit)
}

func (r *interviewRepo) list(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := []domain.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}

// CreateForOwner inserts through a SELECT on the parent job so the ownership
// check and the write happen in one statement.
func (r *interviewRepo) CreateForOwner(ctx context.Context, ownerID string, iv *domain.Interview) error {
	if !validID(iv.JobID) {
		return domain.ErrReferenceNotFound
	}
	query := `INSERT INTO interviews (job_id, date, time, type, location, notes, duration, round, status, created_at, updated_at)
              SELECT j.id, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12 FROM jobs j WHERE j.id = $1 AND j.owner_id = $2
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		iv.JobID, ownerID, iv.Date, iv.Time, iv.Type, iv.Location, iv.Notes, iv.Duration, iv.Round, iv.Status,
		iv.CreatedAt, iv.UpdatedAt,
	).Scan(&iv.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReferenceNotFound
		}
		return mapError(err)
	}
	return r.attachJob(ctx, iv)
}

func (r *interviewRepo) UpdateForOwner(ctx context.Context, ownerID string, iv *domain.Interview) error {
	if !validID(iv.ID) {
		return domain.ErrNotFound
	}
	if !validID(iv.JobID) {
		return domain.ErrReferenceNotFound
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// lock the current row through its job so a concurrent delete waits
	var currentJob string
	err = tx.QueryRow(ctx, `SELECT i.job_id FROM interviews i JOIN jobs j ON j.id = i.job_id
		WHERE i.id = $1 AND j.owner_id = $2 FOR UPDATE OF i`, iv.ID, ownerID).Scan(&currentJob)
	if err != nil {
		return mapError(err)
	}

	query := `UPDATE interviews i SET job_id = j.id, date = $4, time = $5, type = $6, location = $7, notes = $8,
              duration = $9, round = $10, status = $11, updated_at = $12
              FROM jobs j WHERE i.id = $1 AND j.id = $2 AND j.owner_id = $3`
	tag, err := tx.Exec(ctx, query,
		iv.ID, iv.JobID, ownerID, iv.Date, iv.Time, iv.Type, iv.Location, iv.Notes, iv.Duration, iv.Round,
		iv.Status, iv.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReferenceNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	return r.attachJob(ctx, iv)
}

func (r *interviewRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `DELETE FROM interviews i USING jobs j WHERE i.id = $1 AND j.id = i.job_id AND j.owner_id = $2`
	return execAffected(r.db.Exec(ctx, query, id, ownerID))
}

func (r *interviewRepo) attachJob(ctx context.Context, iv *domain.Interview) error {
	summary := &domain.JobSummary{ID: iv.JobID}
	err := r.db.QueryRow(ctx, `SELECT owner_id, company, position FROM jobs WHERE id = $1`, iv.JobID).
		Scan(&iv.OwnerID, &summary.Company, &summary.Position)
	if err != nil {
		return mapError(err)
	}
	iv.Job = summary
	return nil
}
