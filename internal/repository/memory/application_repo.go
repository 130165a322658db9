package memory

import (
	"context"
	"sort"

	"go-jobtracker-backend/internal/domain"
)

type applicationRepo struct {
	s *Store
}

// contactExists mirrors the contact_id foreign key, which checks existence
// only. Ownership is enforced above the store.
func (r *applicationRepo) contactExists(contactID *string) bool {
	if contactID == nil {
		return true
	}
	_, ok := r.s.contacts[*contactID]
	return ok
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.contactExists(app.ContactID) {
		return domain.ErrReferenceNotFound
	}
	id, seq := r.s.next()
	app.ID = id
	r.s.applications[id] = row[domain.Application]{value: *app, seq: seq}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	app := rec.value
	return &app, nil
}

func (r *applicationRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool { return a.OwnerID == ownerID }), nil
}

func (r *applicationRepo) ListByContact(ctx context.Context, contactID, ownerID string) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool {
		return a.OwnerID == ownerID && a.ContactID != nil && *a.ContactID == contactID
	}), nil
}

func (r *applicationRepo) list(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []row[domain.Application]
	for _, rec := range r.s.applications {
		if keep(rec.value) {
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

	apps := make([]domain.Application, 0, len(rows))
	for _, rec := range rows {
		apps = append(apps, rec.value)
	}
	return apps
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.applications[app.ID]
	if !ok || rec.value.OwnerID != app.OwnerID {
		return domain.ErrNotFound
	}
	if !r.contactExists(app.ContactID) {
		return domain.ErrReferenceNotFound
	}
	rec.value = *app
	r.s.applications[app.ID] = rec
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.applications[id]
	if !ok || rec.value.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) CountByStatus(ctx context.Context, ownerID string) (map[domain.PipelineStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var statuses []domain.PipelineStatus
	for _, rec := range r.s.applications {
		if rec.value.OwnerID == ownerID {
			statuses = append(statuses, rec.value.Status)
		}
	}
	return countStatuses(statuses), nil
}
