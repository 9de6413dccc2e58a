package fencing

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotOwner is returned when a client tries to mutate the log or release the lock without owning the lock.
var ErrNotOwner = errors.New("client does not own the write lock")

// Gate holds the current write lock owner together with the epoch counter.
//
// Gate is safe to use from multiple Go routines concurrently.
type Gate struct {
	mutex sync.Mutex

	// The client currently owning the write lock. Only valid when hasOwner is true.
	owner    string
	hasOwner bool

	// The epoch of the last acquisition. Starts at zero, so the first acquisition returns one.
	epoch int64
}

// NewGate creates a new Gate without an owner and an epoch of zero.
func NewGate() *Gate {
	return &Gate{}
}

// Acquire installs the given client as the new owner of the write lock and returns the new epoch. This is a steal and
// never fails, even when another client currently owns the lock.
func (g *Gate) Acquire(clientID string) int64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.owner = clientID
	g.hasOwner = true
	g.epoch++
	AcquisitionsTotal.Inc()
	return g.epoch
}

// Release clears the write lock if it is owned by the given client. It returns ErrNotOwner otherwise, which means
// that some other client superseded the given client.
func (g *Gate) Release(clientID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.hasOwner || g.owner != clientID {
		return g.notOwnerError(clientID)
	}
	g.owner = ""
	g.hasOwner = false
	return nil
}

// Check reports ErrNotOwner when the write lock is held by a client other than the given one. It succeeds when nobody
// holds the lock.
func (g *Gate) Check(clientID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.hasOwner && g.owner != clientID {
		RejectionsTotal.Inc()
		return g.notOwnerError(clientID)
	}
	return nil
}

// Epoch returns the epoch of the last acquisition.
func (g *Gate) Epoch() int64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.epoch
}

// Owner returns the current owner of the write lock. The second return value is false if nobody holds the lock.
func (g *Gate) Owner() (string, bool) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.owner, g.hasOwner
}

func (g *Gate) notOwnerError(clientID string) error {
	if !g.hasOwner {
		return fmt.Errorf("client %q: %w (lock is not held)", clientID, ErrNotOwner)
	}
	return fmt.Errorf("client %q: %w (owned by %q at epoch %d)", clientID, ErrNotOwner, g.owner, g.epoch)
}
