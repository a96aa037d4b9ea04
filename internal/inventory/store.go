package inventory

import (
	"sort"
	"sync"
)

// Store is the client-held, last-known-authoritative inventory of one
// household. It holds at most one Item per id. Every method is applied under
// a single RWMutex, so readers never observe a half-applied mutation.
//
// The store is only ever mutated with values the upstream has confirmed.
type Store struct {
	mu    sync.RWMutex
	items map[string]*entry
	seq   uint64
}

type entry struct {
	item Item
	seq  uint64 // insertion order, stable across replacement
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{items: make(map[string]*entry)}
}

// Upsert replaces the item with the same id wholesale, or inserts it.
// Items without an id are ignored and reported as false.
func (s *Store) Upsert(item Item) bool {
	if item.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(item)
	return true
}

func (s *Store) upsertLocked(item Item) {
	if e, ok := s.items[item.ID]; ok {
		e.item = item
		return
	}
	s.seq++
	s.items[item.ID] = &entry{item: item, seq: s.seq}
}

// Merge upserts a confirmed batch under one lock. If any item lacks an id,
// nothing is applied and false is returned.
func (s *Store) Merge(items []Item) bool {
	for _, it := range items {
		if it.ID == "" {
			return false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.upsertLocked(it)
	}
	return true
}

// Replace discards the current contents and loads items, as returned by a
// full listing from the upstream. Items without an id are dropped; a
// repeated id keeps the last value.
func (s *Store) Replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		s.upsertLocked(it)
	}
}

// Remove deletes id from the store. It reports whether the id was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// DecrementAndMaybeRemove applies the upstream's answer to a delete request
// for id. A deleted outcome removes the item; a decremented outcome replaces
// it with the server-supplied item. Any other outcome, or a decremented
// response without a matching item, returns a *ReconcileError and leaves the
// store untouched.
func (s *Store) DecrementAndMaybeRemove(id string, resp MutationResponse) error {
	return s.apply(id, resp, OutcomeDecremented)
}

// apply resolves a mutation response whose non-removal outcome must be
// replacement. Checks run before the lock is taken for writing so a rejected
// response never mutates anything.
func (s *Store) apply(id string, resp MutationResponse, replaceOutcome Outcome) error {
	switch resp.Outcome {
	case OutcomeDeleted:
		s.Remove(id)
		return nil

	case replaceOutcome:
		if resp.Item == nil {
			return &ReconcileError{ID: id, Outcome: resp.Outcome, Reason: "response carries no item"}
		}
		item := *resp.Item
		if item.ID == "" {
			item.ID = id
		}
		if item.ID != id {
			return &ReconcileError{ID: id, Outcome: resp.Outcome, Reason: "response item has id " + item.ID}
		}
		if item.Quantity < 0 {
			return &ReconcileError{ID: id, Outcome: resp.Outcome, Reason: "response item has negative quantity"}
		}
		s.Upsert(item)
		return nil

	default:
		return &ReconcileError{ID: id, Outcome: resp.Outcome, Reason: "unrecognized outcome"}
	}
}

// Get returns the item stored under id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok {
		return Item{}, false
	}
	return e.item, true
}

// Len returns the number of items held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of every item, newest AddedAt first. Items added at
// the same instant keep insertion order.
func (s *Store) Snapshot() []Item {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.items))
	for _, e := range s.items {
		entries = append(entries, e)
	}
	out := make([]Item, len(entries))
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.item.AddedAt.Equal(b.item.AddedAt) {
			return a.item.AddedAt.After(b.item.AddedAt)
		}
		return a.seq < b.seq
	})
	for i, e := range entries {
		out[i] = e.item
	}
	s.mu.RUnlock()

	return out
}
