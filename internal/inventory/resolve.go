package inventory

// Resolver applies upstream mutation responses to a Store. It never
// computes quantities itself: the upstream decides when a decrement becomes
// a removal and this side applies whichever outcome it is told.
type Resolver struct {
	store *Store
}

// NewResolver returns a Resolver bound to store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveDelete applies the answer to a delete request. Accepted outcomes
// are deleted and decremented.
func (r *Resolver) ResolveDelete(id string, resp MutationResponse) error {
	return r.store.DecrementAndMaybeRemove(id, resp)
}

// ResolveUpdate applies the answer to an update request. Accepted outcomes
// are deleted (quantity dropped to zero) and updated.
func (r *Resolver) ResolveUpdate(id string, resp MutationResponse) error {
	return r.store.apply(id, resp, OutcomeUpdated)
}
