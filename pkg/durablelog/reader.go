package durablelog

import intdurablelog "github.com/backbone81/durable-log/internal/durablelog"

// Reader reads the entries of the log which existed when the reader was created.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Reader = intdurablelog.Reader

// ReadItem is a single entry returned by the Reader.
type ReadItem = intdurablelog.ReadItem
