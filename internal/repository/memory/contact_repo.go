package memory

import (
	"context"
	"sort"
	"strings"

	"go-jobtracker-backend/internal/domain"
)

type contactRepo struct {
	s *Store
}

func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.next()
	contact.ID = id
	r.s.contacts[id] = row[domain.Contact]{value: *contact, seq: seq}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.contacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := rec.value
	return &c, nil
}

func (r *contactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []row[domain.Contact]
	for _, rec := range r.s.contacts {
		if rec.value.OwnerID == ownerID {
			rows = append(rows, rec)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := strings.Compare(a.value.FirstName, b.value.FirstName); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})

	contacts := make([]domain.Contact, 0, len(rows))
	for _, rec := range rows {
		contacts = append(contacts, rec.value)
	}
	return contacts, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.contacts[contact.ID]
	if !ok || rec.value.OwnerID != contact.OwnerID {
		return domain.ErrNotFound
	}
	rec.value = *contact
	r.s.contacts[contact.ID] = rec
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.contacts[id]
	if !ok || rec.value.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	// same as ON DELETE SET NULL on applications.contact_id
	for appID, app := range r.s.applications {
		if app.value.ContactID != nil && *app.value.ContactID == id {
			app.value.ContactID = nil
			r.s.applications[appID] = app
		}
	}
	delete(r.s.contacts, id)
	return nil
}
