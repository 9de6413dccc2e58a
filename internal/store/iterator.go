package store

// Iterator iterates over a snapshot of store entries in ascending sequence number order.
//
// Instances of this struct are NOT safe for concurrent use.
type Iterator struct {
	entries []Entry
	index   int
}

// Next moves to the next entry and reports if there is one. Value returns that entry afterward.
func (i *Iterator) Next() bool {
	if i.index+1 >= len(i.entries) {
		i.index = len(i.entries)
		return false
	}
	i.index++
	return true
}

// Value returns the current entry. The value is only valid after Next returned true.
func (i *Iterator) Value() Entry {
	return i.entries[i.index]
}

// Len returns the number of entries remaining, including the current one.
func (i *Iterator) Len() int {
	return max(len(i.entries)-max(i.index, 0), 0)
}
