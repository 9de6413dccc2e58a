package durablelog

import (
	"cmp"
	"fmt"
)

// LogAddress identifies the position of an entry in the log. Two addresses are equal if their sequence numbers are
// equal.
type LogAddress struct {
	sequence int64
}

// NewLogAddress creates a new address for the given sequence number.
func NewLogAddress(sequence int64) LogAddress {
	return LogAddress{sequence: sequence}
}

// Sequence returns the sequence number of the address, which is the starting byte offset of the entry.
func (a LogAddress) Sequence() int64 {
	return a.sequence
}

// Compare returns -1, 0 or +1 depending on whether a is before, equal to or after the other address.
func (a LogAddress) Compare(other LogAddress) int {
	return cmp.Compare(a.sequence, other.sequence)
}

func (a LogAddress) String() string {
	return fmt.Sprintf("Sequence = %d", a.sequence)
}
