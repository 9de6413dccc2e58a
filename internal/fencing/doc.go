// Package fencing provides the write lock which guarantees that at most one client is able to mutate a shared log.
//
//   - A client acquires the lock unconditionally. The newest client always wins and the previous owner is not
//     notified. Instead, the previous owner is rejected on its next mutating call.
//   - Every acquisition increments the epoch. The epoch is strictly increasing and is used by clients to detect that
//     they have been superseded.
//   - Releasing the lock only succeeds for the current owner.
package fencing
