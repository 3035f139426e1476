// Package store keeps in-memory collections of records with soft delete.
package store

import (
	"time"

	"github.com/stagebooks-dev/stagebooks/internal/bus"
	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Entity is satisfied by a pointer to any record type that embeds
// model.Base.
type Entity[E any] interface {
	*E
	Meta() *model.Base
}

// State is a snapshot of a collection.
type State[E any] struct {
	Entities []E
	Loading  bool
	Err      error
}

// Action is one state transition. Which fields are read depends on Type:
// ADD reads Entity, SET reads Entities, UPDATE reads ID and Patch, and the
// delete and restore actions read ID. At stamps UpdatedAt.
type Action[E any] struct {
	Type     bus.Action
	ID       string
	Entity   E
	Entities []E
	Patch    func(*E)
	At       time.Time
}

// Reduce applies a to s and returns the new state. It never mutates s; an
// action naming an unknown id returns s unchanged.
func Reduce[E any, P Entity[E]](s State[E], a Action[E]) State[E] {
	switch a.Type {
	case bus.ActionAdd:
		s.Entities = append(clone(s.Entities), a.Entity)
	case bus.ActionSet:
		s.Entities = clone(a.Entities)
	case bus.ActionUpdate, bus.ActionSoftDelete, bus.ActionRestore:
		i := indexOf[E, P](s.Entities, a.ID)
		if i < 0 {
			return s
		}
		entities := clone(s.Entities)
		e := P(&entities[i])
		switch a.Type {
		case bus.ActionUpdate:
			keep := *e.Meta()
			if a.Patch != nil {
				a.Patch(&entities[i])
			}
			m := e.Meta()
			m.ID, m.CreatedAt, m.IsDeleted = keep.ID, keep.CreatedAt, keep.IsDeleted
		case bus.ActionSoftDelete:
			e.Meta().IsDeleted = true
		case bus.ActionRestore:
			e.Meta().IsDeleted = false
		}
		e.Meta().UpdatedAt = a.At
		s.Entities = entities
	case bus.ActionDelete:
		i := indexOf[E, P](s.Entities, a.ID)
		if i < 0 {
			return s
		}
		entities := make([]E, 0, len(s.Entities)-1)
		entities = append(entities, s.Entities[:i]...)
		s.Entities = append(entities, s.Entities[i+1:]...)
	}
	return s
}

func indexOf[E any, P Entity[E]](entities []E, id string) int {
	for i := range entities {
		if P(&entities[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

func clone[E any](entities []E) []E {
	return append([]E(nil), entities...)
}
