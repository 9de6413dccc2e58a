// Package durablelog provides a fenced, append-only log of opaque byte entries kept in memory.
//
//   - Every entry is addressed by its starting byte offset within the logical stream. The address of an entry is
//     the address of the previous entry plus the length of the previous payload.
//   - Multiple Log instances can share the same store to model competing writers. Initializing a Log steals the write
//     lock and increments the epoch. A Log which was superseded by another one fails on its next mutation.
//   - Appends go through an ordered pipeline. Addresses are assigned in submission order and results complete in
//     submission order, while a configurable number of appends can wait for their post-commit delay concurrently.
//   - Nothing is persisted. The contents of the log live as long as the store.
package durablelog
