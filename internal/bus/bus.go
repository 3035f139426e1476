// Package bus delivers entity change notifications to subscribers.
//
// A change on one kind is also announced as an invalidation to every kind
// that depends on it, so views built over dependent records know to refresh.
package bus

import (
	"log/slog"
	"sync"
	"time"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Action names what happened to a record.
type Action string

const (
	ActionAdd         Action = "ADD"
	ActionUpdate      Action = "UPDATE"
	ActionDelete      Action = "DELETE"
	ActionSoftDelete  Action = "SOFT_DELETE"
	ActionRestore     Action = "RESTORE"
	ActionSet         Action = "SET"
	ActionInvalidated Action = "INVALIDATED"
)

// Change is one notification. For ActionInvalidated, Kind is the dependent
// kind, Source the kind that changed and ID the id of the changed record.
type Change struct {
	Kind   model.EntityKind `json:"kind"`
	Action Action           `json:"action"`
	ID     string           `json:"id,omitempty"`
	At     time.Time        `json:"at"`
	Source model.EntityKind `json:"source,omitempty"`
}

// Handler receives changes. It runs on the publisher's goroutine.
type Handler func(Change)

// DefaultDependencies returns which kinds depend on which. Records of the
// dependent kinds carry an event id.
func DefaultDependencies() map[model.EntityKind][]model.EntityKind {
	return map[model.EntityKind][]model.EntityKind{
		model.KindEvent: {
			model.KindExpense,
			model.KindCostItem,
			model.KindRevenueItem,
			model.KindStaffAssignment,
		},
		model.KindStaff: {model.KindStaffAssignment},
	}
}

type subscription struct {
	id int
	h  Handler
}

// Bus fans changes out to per-kind subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[model.EntityKind][]subscription
	deps   map[model.EntityKind][]model.EntityKind
	nextID int
	logger *slog.Logger
}

// New returns a bus using deps as the dependency graph. A nil logger uses
// slog.Default.
func New(deps map[model.EntityKind][]model.EntityKind, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:   make(map[model.EntityKind][]subscription),
		deps:   deps,
		logger: logger,
	}
}

// Subscribe registers h for changes on kind, including invalidations. The
// returned func removes the subscription.
func (b *Bus) Subscribe(kind model.EntityKind, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[kind]
		for i, s := range subs {
			if s.id == id {
				b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dependents returns the kinds that depend on kind.
func (b *Bus) Dependents(kind model.EntityKind) []model.EntityKind {
	return b.deps[kind]
}

// Publish delivers c to subscribers of c.Kind, then an invalidation to
// subscribers of every dependent kind.
func (b *Bus) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now()
	}
	b.logger.Debug("entity changed",
		slog.String("kind", string(c.Kind)),
		slog.String("action", string(c.Action)),
		slog.String("id", c.ID),
	)
	b.deliver(c)

	for _, dep := range b.deps[c.Kind] {
		b.deliver(Change{
			Kind:   dep,
			Action: ActionInvalidated,
			ID:     c.ID,
			At:     c.At,
			Source: c.Kind,
		})
	}
}

func (b *Bus) deliver(c Change) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[c.Kind]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.h(c)
	}
}
