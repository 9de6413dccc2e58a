package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/backbone81/durable-log/internal/fencing"
)

// ErrOutOfOrder is returned when an entry would not be appended strictly after the last entry in the store.
var ErrOutOfOrder = errors.New("entry sequence number is not after the last entry")

// DefaultMaxAppendSize is the default upper bound for the payload of a single entry.
const DefaultMaxAppendSize = 1024*1024 - 8*1024

// compactThreshold is the minimum number of truncated slots before the backing slice is compacted.
const compactThreshold = 1024

// Store is the ordered container of log entries shared by all clients of a log.
//
// Store is safe to use from multiple Go routines concurrently.
type Store struct {
	mutex sync.Mutex

	gate          *fencing.Gate
	maxAppendSize int

	// The backing slice. Entries before start are truncated and only kept until the next compaction.
	entries []Entry
	start   int

	// The sum of the payload lengths of all retained entries.
	retainedBytes int64
}

// Option describes the function signature which all store options need to implement.
type Option func(s *Store)

// WithMaxAppendSize overwrites the default maximum size of a single entry payload.
func WithMaxAppendSize(maxAppendSize int) Option {
	return func(s *Store) {
		s.maxAppendSize = max(maxAppendSize, 1)
	}
}

// New creates a new empty store which checks all mutations against the given fencing gate.
func New(gate *fencing.Gate, options ...Option) *Store {
	newStore := &Store{
		gate:          gate,
		maxAppendSize: DefaultMaxAppendSize,
	}
	for _, option := range options {
		option(newStore)
	}
	return newStore
}

// Gate returns the fencing gate guarding this store.
func (s *Store) Gate() *fencing.Gate {
	return s.gate
}

// MaxAppendSize returns the configured maximum payload size of a single entry. The store does not enforce this
// limit itself.
func (s *Store) MaxAppendSize() int {
	return s.maxAppendSize
}

// Lock acquires the global commit section of the store. Only the *Locked methods may be called while holding it.
func (s *Store) Lock() {
	s.mutex.Lock()
}

// Unlock releases the global commit section of the store.
func (s *Store) Unlock() {
	s.mutex.Unlock()
}

// Append appends the entry at the tail of the store if the given client passes the fencing check.
func (s *Store) Append(entry Entry, clientID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.AppendLocked(entry, clientID)
}

// AppendLocked is Append for callers already holding the store lock.
func (s *Store) AppendLocked(entry Entry, clientID string) error {
	if err := s.gate.Check(clientID); err != nil {
		return err
	}
	if last, ok := s.LastLocked(); ok && entry.SequenceNumber <= last.SequenceNumber {
		return fmt.Errorf("appending %s after %s: %w", entry, last, ErrOutOfOrder)
	}

	s.entries = append(s.entries, entry)
	s.retainedBytes += int64(len(entry.Data))
	RetainedEntries.Inc()
	RetainedBytes.Add(float64(len(entry.Data)))
	return nil
}

// Truncate removes all entries with a sequence number up to and including upToSequence if the given client passes
// the fencing check. Truncating where no entry qualifies is a no-op.
func (s *Store) Truncate(upToSequence int64, clientID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.TruncateLocked(upToSequence, clientID)
}

// TruncateLocked is Truncate for callers already holding the store lock.
func (s *Store) TruncateLocked(upToSequence int64, clientID string) error {
	if err := s.gate.Check(clientID); err != nil {
		return err
	}

	retained := s.entries[s.start:]
	count := sort.Search(len(retained), func(i int) bool {
		return retained[i].SequenceNumber > upToSequence
	})
	if count == 0 {
		return nil
	}

	var removedBytes int64
	for i := range count {
		removedBytes += int64(len(retained[i].Data))
		// Drop the payload reference so truncated data can be collected before the next compaction.
		retained[i] = Entry{}
	}
	s.start += count
	s.retainedBytes -= removedBytes
	s.compactIfNeeded()

	TruncatedEntriesTotal.Add(float64(count))
	RetainedEntries.Sub(float64(count))
	RetainedBytes.Sub(float64(removedBytes))
	return nil
}

// Last returns the entry with the highest sequence number. The second return value is false if the store is empty.
func (s *Store) Last() (Entry, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.LastLocked()
}

// LastLocked is Last for callers already holding the store lock.
func (s *Store) LastLocked() (Entry, bool) {
	if s.start == len(s.entries) {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.entries) - s.start
}

// RetainedBytes returns the sum of the payload lengths of all retained entries.
func (s *Store) RetainedBytes() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.retainedBytes
}

// Iterate returns an iterator over all entries with a sequence number of at least fromSequence in ascending order.
// The iterator works on a snapshot taken at the time of the call. Entries appended later are not observed and
// entries truncated later are still returned.
func (s *Store) Iterate(fromSequence int64) *Iterator {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	retained := s.entries[s.start:]
	first := sort.Search(len(retained), func(i int) bool {
		return retained[i].SequenceNumber >= fromSequence
	})

	// Entries are immutable, copying the headers is a consistent snapshot. Truncation clears slots in the backing
	// slice, so the snapshot must not share it.
	snapshot := make([]Entry, len(retained)-first)
	copy(snapshot, retained[first:])
	return &Iterator{
		entries: snapshot,
		index:   -1,
	}
}

// compactIfNeeded moves the retained entries to the front of a new backing slice when the truncated prefix makes up
// the larger part of the backing slice.
func (s *Store) compactIfNeeded() {
	if s.start < compactThreshold || s.start < len(s.entries)/2 {
		return
	}
	retained := make([]Entry, len(s.entries)-s.start, max(len(s.entries)-s.start, compactThreshold))
	copy(retained, s.entries[s.start:])
	s.entries = retained
	s.start = 0
}
