// Package memory is an in-process persistence store used for local
// development and tests. It keeps the same ordering, cascade and parent-check
// behaviour as the postgres repositories.
package memory

import (
	"context"
	"sync"

	"go-jobtracker-backend/internal/domain"

	"github.com/google/uuid"
)

type row[T any] struct {
	value T
	seq   uint64
}

// Store holds every collection behind one lock so that cross-collection
// checks (interview parent, contact detach) are atomic.
type Store struct {
	mu  sync.RWMutex
	seq uint64

	users        map[string]domain.User
	jobs         map[string]row[domain.Job]
	applications map[string]row[domain.Application]
	contacts     map[string]row[domain.Contact]
	interviews   map[string]row[domain.Interview]
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		jobs:         make(map[string]row[domain.Job]),
		applications: make(map[string]row[domain.Application]),
		contacts:     make(map[string]row[domain.Contact]),
		interviews:   make(map[string]row[domain.Interview]),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Jobs() domain.JobRepository                 { return &jobRepo{s: s} }
func (s *Store) Applications() domain.ApplicationRepository { return &applicationRepo{s: s} }
func (s *Store) Contacts() domain.ContactRepository         { return &contactRepo{s: s} }
func (s *Store) Interviews() domain.InterviewRepository     { return &interviewRepo{s: s} }
func (s *Store) Users() domain.UserRepository               { return &userRepo{s: s} }

// next must be called with mu held for writing.
func (s *Store) next() (string, uint64) {
	s.seq++
	return uuid.NewString(), s.seq
}

func countStatuses(statuses []domain.PipelineStatus) map[domain.PipelineStatus]int {
	out := make(map[domain.PipelineStatus]int)
	for _, st := range statuses {
		out[st]++
	}
	return out
}
