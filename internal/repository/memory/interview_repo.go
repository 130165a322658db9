package memory

import (
	"context"
	"sort"
	"time"

	"go-jobtracker-backend/internal/domain"
)

type interviewRepo struct {
	s *Store
}

// withJob fills the owner and job summary from the parent. Requires mu held.
func (r *interviewRepo) withJob(iv domain.Interview) domain.Interview {
	if job, ok := r.s.jobs[iv.JobID]; ok {
		iv.OwnerID = job.value.OwnerID
		iv.Job = &domain.JobSummary{ID: job.value.ID, Company: job.value.Company, Position: job.value.Position}
	}
	return iv
}

// ownedJob reports whether jobID exists and belongs to ownerID. Requires mu held.
func (r *interviewRepo) ownedJob(jobID, ownerID string) bool {
	job, ok := r.s.jobs[jobID]
	return ok && job.value.OwnerID == ownerID
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.interviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	iv := r.withJob(rec.value)
	return &iv, nil
}

func (r *interviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Interview, error) {
	return r.list(func(iv domain.Interview) bool { return iv.OwnerID == ownerID }, 0), nil
}

func (r *interviewRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Interview, error) {
	return r.list(func(iv domain.Interview) bool { return iv.JobID == jobID }, 0), nil
}

func (r *interviewRepo) ListUpcoming(ctx context.Context, ownerID string, from time.Time, limit int) ([]domain.Interview, error) {
	return r.list(func(iv domain.Interview) bool {
		return iv.OwnerID == ownerID && iv.Status.Upcoming() && !iv.Date.Before(from)
	}, limit), nil
}

func (r *interviewRepo) list(keep func(domain.Interview) bool, limit int) []domain.Interview {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type entry struct {
		iv  domain.Interview
		seq uint64
	}
	var entries []entry
	for _, rec := range r.s.interviews {
		iv := r.withJob(rec.value)
		if keep(iv) {
			entries = append(entries, entry{iv: iv, seq: rec.seq})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.iv.Date.Equal(b.iv.Date) {
			return a.iv.Date.Before(b.iv.Date)
		}
		return a.seq < b.seq
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]domain.Interview, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.iv)
	}
	return out
}

func (r *interviewRepo) CreateForOwner(ctx context.Context, ownerID string, interview *domain.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.ownedJob(interview.JobID, ownerID) {
		return domain.ErrReferenceNotFound
	}
	id, seq := r.s.next()
	interview.ID = id
	stored := *interview
	stored.OwnerID, stored.Job = "", nil
	r.s.interviews[id] = row[domain.Interview]{value: stored, seq: seq}

	*interview = r.withJob(stored)
	return nil
}

func (r *interviewRepo) UpdateForOwner(ctx context.Context, ownerID string, interview *domain.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.interviews[interview.ID]
	if !ok || !r.ownedJob(rec.value.JobID, ownerID) {
		return domain.ErrNotFound
	}
	if !r.ownedJob(interview.JobID, ownerID) {
		return domain.ErrReferenceNotFound
	}
	stored := *interview
	stored.OwnerID, stored.Job = "", nil
	rec.value = stored
	r.s.interviews[interview.ID] = rec

	*interview = r.withJob(stored)
	return nil
}

func (r *interviewRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.interviews[id]
	if !ok || !r.ownedJob(rec.value.JobID, ownerID) {
		return domain.ErrNotFound
	}
	delete(r.s.interviews, id)
	return nil
}
