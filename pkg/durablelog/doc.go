// Package durablelog provides a fenced, append-only log of opaque byte entries kept in memory.
//
//   - A Store holds the entries and is shared by all writers of the same logical log. It lives longer than any
//     single writer.
//   - A Log is a writer session on a Store. Initializing a Log steals the write lock and increments the epoch. The
//     previous writer is fenced out and fails with ErrNotPrimary on its next mutation.
//   - Every entry is addressed by its starting byte offset within the logical stream.
//   - Appends are committed in the order they were submitted and complete in the same order, while up to a
//     configurable number of appends can be in flight concurrently.
package durablelog
