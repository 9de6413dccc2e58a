package durablelog

import (
	intfencing "github.com/backbone81/durable-log/internal/fencing"
	intstore "github.com/backbone81/durable-log/internal/store"
)

// Store is the ordered container of entries shared by all writers of a log.
//
// Store is safe to use from multiple Go routines concurrently.
type Store = intstore.Store

// StoreOption describes the function signature which all store options need to implement.
type StoreOption = intstore.Option

// DefaultMaxAppendSize is the default upper bound for the payload of a single entry.
const DefaultMaxAppendSize = intstore.DefaultMaxAppendSize

// WithMaxAppendSize overwrites the default maximum size of a single entry payload.
var WithMaxAppendSize = intstore.WithMaxAppendSize

// ErrOutOfOrder is returned when a stale writer tries to append before the end of the store.
var ErrOutOfOrder = intstore.ErrOutOfOrder

// ErrNotOwner is returned when a writer tries to mutate the store without owning the write lock.
var ErrNotOwner = intfencing.ErrNotOwner

// NewStore creates a new empty store with its own fencing gate.
func NewStore(options ...StoreOption) *Store {
	return intstore.New(intfencing.NewGate(), options...)
}
