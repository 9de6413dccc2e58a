package store

import "fmt"

// Entry is a single record in the store. An entry is immutable after it was created.
type Entry struct {
	// The starting byte offset of this entry within the logical stream.
	SequenceNumber int64

	// The payload of the entry. The store owns this slice and it must not be modified.
	Data []byte
}

// NewEntry creates a new entry with a private copy of the given data. The caller is free to reuse data afterward.
func NewEntry(sequenceNumber int64, data []byte) Entry {
	return Entry{
		SequenceNumber: sequenceNumber,
		Data:           append(make([]byte, 0, len(data)), data...),
	}
}

// End returns the sequence number directly following this entry.
func (e Entry) End() int64 {
	return e.SequenceNumber + int64(len(e.Data))
}

func (e Entry) String() string {
	return fmt.Sprintf("SequenceNumber = %d, Length = %d", e.SequenceNumber, len(e.Data))
}
