package durablelog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/backbone81/durable-log/internal/store"
	"github.com/backbone81/durable-log/internal/utils"
)

// Reader reads the entries of the log which existed when the reader was created.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Reader struct {
	noCopy utils.NoCopy

	iterator *store.Iterator
	closed   bool
}

func newReader(iterator *store.Iterator) *Reader {
	return &Reader{
		iterator: iterator,
	}
}

// Next reports if an entry is available. When it returns true, Value() returns that entry.
func (r *Reader) Next() bool {
	if r.closed {
		return false
	}
	return r.iterator.Next()
}

// Value returns the current entry. The value is only valid after Next() returned true.
func (r *Reader) Value() ReadItem {
	entry := r.iterator.Value()
	return ReadItem{
		payload: entry.Data,
		address: NewLogAddress(entry.SequenceNumber),
	}
}

// Close releases the reader. Next() returns false afterward.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

// ReadItem is a single entry returned by the Reader.
type ReadItem struct {
	payload []byte
	address LogAddress
}

// Address returns the address of the entry.
func (i ReadItem) Address() LogAddress {
	return i.address
}

// Length returns the length of the payload in bytes.
func (i ReadItem) Length() int {
	return len(i.payload)
}

// Payload returns a reader over the payload. The payload itself is shared with the log and never modified.
func (i ReadItem) Payload() io.Reader {
	return bytes.NewReader(i.payload)
}

func (i ReadItem) String() string {
	return fmt.Sprintf("Address = %s, Length = %d", i.address, len(i.payload))
}
