// Package store provides the ordered, truncatable container holding the entries of a log.
//
//   - Entries are identified by their sequence number, which is the starting byte offset of the entry within the
//     logical stream. Sequence numbers are strictly increasing from one entry to the next.
//   - Entries are appended at the tail only and removed as a prefix only. There is no insertion in the middle and
//     truncation never creates gaps.
//   - Every mutation is checked against the fencing gate, so only the client owning the write lock can change the
//     store.
//   - The store lock doubles as the global commit section for all clients sharing the store. Use Lock together with
//     the *Locked methods when assigning sequence numbers and inserting entries needs to be a single atomic step.
package store
