package memory

import (
	"context"
	"sort"

	"go-jobtracker-backend/internal/domain"
)

type jobRepo struct {
	s *Store
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.next()
	job.ID = id
	r.s.jobs[id] = row[domain.Job]{value: *job, seq: seq}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job := rec.value
	return &job, nil
}

func (r *jobRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []row[domain.Job]
	for _, rec := range r.s.jobs {
		if rec.value.OwnerID == ownerID {
			rows = append(rows, rec)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.value.AppliedAt.Equal(b.value.AppliedAt) {
			return a.value.AppliedAt.After(b.value.AppliedAt)
		}
		return a.seq > b.seq
	})

	jobs := make([]domain.Job, 0, len(rows))
	for _, rec := range rows {
		jobs = append(jobs, rec.value)
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.jobs[job.ID]
	if !ok || rec.value.OwnerID != job.OwnerID {
		return domain.ErrNotFound
	}
	rec.value = *job
	r.s.jobs[job.ID] = rec
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.jobs[id]
	if !ok || rec.value.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	for ivID, iv := range r.s.interviews {
		if iv.value.JobID == id {
			delete(r.s.interviews, ivID)
		}
	}
	delete(r.s.jobs, id)
	return nil
}

func (r *jobRepo) CountByStatus(ctx context.Context, ownerID string) (map[domain.PipelineStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var statuses []domain.PipelineStatus
	for _, rec := range r.s.jobs {
		if rec.value.OwnerID == ownerID {
			statuses = append(statuses, rec.value.Status)
		}
	}
	return countStatuses(statuses), nil
}
