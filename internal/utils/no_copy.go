package utils

import "sync"

// NoCopy marks a struct as not to be copied. Embedding it as a field makes go vet report copies of the struct, in the
// same way sync.noCopy does for the concurrency primitives of the standard library.
type NoCopy struct{}

// NoCopy implements sync.Locker.
var _ sync.Locker = (*NoCopy)(nil)

func (n *NoCopy) Lock() {}

func (n *NoCopy) Unlock() {}
