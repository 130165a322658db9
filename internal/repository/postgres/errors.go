package postgres

import (
	"errors"

	"go-jobtracker-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolation = "23503"
)

// validID filters ids that could never match a uuid column; postgres would
// otherwise fail the whole statement with invalid_text_representation.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// mapError translates driver errors into domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domain.ErrReferenceNotFound
	}
	return err
}

// execAffected maps a zero row count to ErrNotFound.
func execAffected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func countStatuses(rows pgx.Rows) (map[domain.PipelineStatus]int, error) {
	defer rows.Close()
	counts := make(map[domain.PipelineStatus]int)
	for rows.Next() {
		var status domain.PipelineStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
