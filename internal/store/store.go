package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stagebooks-dev/stagebooks/internal/bus"
	"github.com/stagebooks-dev/stagebooks/internal/id"
	"github.com/stagebooks-dev/stagebooks/internal/model"
)

var ErrNotFound = errors.New("record not found")

type options struct {
	ids id.Generator
	now func() time.Time
	bus *bus.Bus
}

// Option configures a Store.
type Option func(*options)

// WithIDs sets the id strategy. The default follows the collection, see
// id.AutoIDs.
func WithIDs(g id.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBus publishes a change to b after every mutation.
func WithBus(b *bus.Bus) Option {
	return func(o *options) { o.bus = b }
}

// Store is a collection of records of one kind. It is safe for concurrent
// use. Subscribers are notified after the lock is released.
type Store[E any, P Entity[E]] struct {
	kind model.EntityKind

	mu    sync.RWMutex
	state State[E]

	ids id.Generator
	now func() time.Time
	bus *bus.Bus
}

// New returns an empty store for kind.
func New[E any, P Entity[E]](kind model.EntityKind, opts ...Option) *Store[E, P] {
	o := options{ids: id.AutoIDs(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[E, P]{kind: kind, ids: o.ids, now: o.now, bus: o.bus}
}

// Kind returns the kind of record the store holds.
func (s *Store[E, P]) Kind() model.EntityKind { return s.kind }

// Add stores e with a fresh id and both timestamps set to now. An id already
// set on e is kept unless it is taken.
func (s *Store[E, P]) Add(e E) E {
	s.mu.Lock()
	at := s.now()
	m := P(&e).Meta()
	if m.ID == "" || indexOf[E, P](s.state.Entities, m.ID) >= 0 {
		m.ID = s.ids.Next(s.idsLocked())
	} else {
		s.observe([]string{m.ID})
	}
	m.CreatedAt, m.UpdatedAt, m.IsDeleted = at, at, false
	s.state = Reduce[E, P](s.state, Action[E]{Type: bus.ActionAdd, Entity: e, At: at})
	s.mu.Unlock()

	s.publish(bus.ActionAdd, m.ID, at)
	return e
}

// Update applies patch to the record with the given id and refreshes its
// UpdatedAt. The id, CreatedAt and deletion flag cannot be changed by patch.
func (s *Store[E, P]) Update(id string, patch func(*E)) (E, bool) {
	return s.mutate(bus.ActionUpdate, id, patch)
}

// Delete removes the record with the given id. A soft delete only flags it.
func (s *Store[E, P]) Delete(id string, hard bool) bool {
	action := bus.ActionSoftDelete
	if hard {
		action = bus.ActionDelete
	}
	_, ok := s.mutate(action, id, nil)
	return ok
}

// Restore clears the deletion flag on a soft-deleted record.
func (s *Store[E, P]) Restore(id string) bool {
	_, ok := s.mutate(bus.ActionRestore, id, nil)
	return ok
}

func (s *Store[E, P]) mutate(action bus.Action, id string, patch func(*E)) (E, bool) {
	var zero E
	s.mu.Lock()
	i := indexOf[E, P](s.state.Entities, id)
	if i < 0 {
		s.mu.Unlock()
		return zero, false
	}
	at := s.now()
	s.state = Reduce[E, P](s.state, Action[E]{Type: action, ID: id, Patch: patch, At: at})
	var result E
	if action != bus.ActionDelete {
		result = s.state.Entities[i]
	}
	s.mu.Unlock()

	s.publish(action, id, at)
	return result, true
}

// Set replaces the whole collection.
func (s *Store[E, P]) Set(entities []E) {
	s.mu.Lock()
	at := s.now()
	s.state = Reduce[E, P](s.state, Action[E]{Type: bus.ActionSet, Entities: entities, At: at})
	s.observe(s.idsLocked())
	s.mu.Unlock()

	s.publish(bus.ActionSet, "", at)
}

// Load replaces the collection with what fetch returns. While fetch runs the
// state reports Loading; a failed fetch keeps the old records and records
// the error.
func (s *Store[E, P]) Load(ctx context.Context, fetch func(context.Context) ([]E, error)) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = nil
	s.mu.Unlock()

	entities, err := fetch(ctx)
	if err != nil {
		err = fmt.Errorf("loading %s: %w", s.kind, err)
		s.mu.Lock()
		s.state.Loading = false
		s.state.Err = err
		s.mu.Unlock()
		return err
	}

	s.Set(entities)
	s.mu.Lock()
	s.state.Loading = false
	s.mu.Unlock()
	return nil
}

// State returns a snapshot of the collection, deleted records included.
func (s *Store[E, P]) State() State[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Entities = clone(st.Entities)
	return st
}

// Get returns the record with the given id, deleted or not.
func (s *Store[E, P]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf[E, P](s.state.Entities, id); i >= 0 {
		return s.state.Entities[i], true
	}
	var zero E
	return zero, false
}

// Find is Get with ErrNotFound for a missing id.
func (s *Store[E, P]) Find(id string) (E, error) {
	e, ok := s.Get(id)
	if !ok {
		return e, fmt.Errorf("%s %q: %w", s.kind, id, ErrNotFound)
	}
	return e, nil
}

// All returns every record, deleted ones included.
func (s *Store[E, P]) All() []E {
	return s.filter(func(*model.Base) bool { return true })
}

// List returns the records that are not deleted.
func (s *Store[E, P]) List() []E {
	return s.filter(func(m *model.Base) bool { return !m.IsDeleted })
}

// Deleted returns the soft-deleted records.
func (s *Store[E, P]) Deleted() []E {
	return s.filter(func(m *model.Base) bool { return m.IsDeleted })
}

func (s *Store[E, P]) filter(keep func(*model.Base) bool) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, 0, len(s.state.Entities))
	for i := range s.state.Entities {
		if keep(P(&s.state.Entities[i]).Meta()) {
			out = append(out, s.state.Entities[i])
		}
	}
	return out
}

// observe feeds ids that bypassed the generator back into it, so a
// high-water mark covers them.
func (s *Store[E, P]) observe(ids []string) {
	if o, ok := s.ids.(interface{ Observe([]string) }); ok {
		o.Observe(ids)
	}
}

func (s *Store[E, P]) idsLocked() []string {
	ids := make([]string, len(s.state.Entities))
	for i := range s.state.Entities {
		ids[i] = P(&s.state.Entities[i]).Meta().ID
	}
	return ids
}

func (s *Store[E, P]) publish(action bus.Action, id string, at time.Time) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Change{Kind: s.kind, Action: action, ID: id, At: at})
}
