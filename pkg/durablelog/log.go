package durablelog

import (
	intdurablelog "github.com/backbone81/durable-log/internal/durablelog"
	intpipeline "github.com/backbone81/durable-log/internal/pipeline"
)

// Log is a single writer session on a shared store. It needs to be initialized before use and closed afterward.
//
// Log is safe to use from multiple Go routines concurrently.
type Log = intdurablelog.Log

// LogAddress identifies the position of an entry in the log.
type LogAddress = intdurablelog.LogAddress

// Future is the eventual address of an asynchronous append.
type Future = intpipeline.Future[LogAddress]

// QueueStats describes the current load of the append pipeline.
type QueueStats = intdurablelog.QueueStats

// Option describes the function signature which all log options need to implement.
type Option = intdurablelog.Option

// New creates a new log on top of the given store.
var New = intdurablelog.New

// NewLogAddress creates a new address for the given sequence number.
var NewLogAddress = intdurablelog.NewLogAddress

var (
	ErrNotPrimary      = intdurablelog.ErrNotPrimary
	ErrAlreadyClosed   = intdurablelog.ErrAlreadyClosed
	ErrNotInitialized  = intdurablelog.ErrNotInitialized
	ErrPayloadTooLarge = intdurablelog.ErrPayloadTooLarge
)

// WithClientID overwrites the randomly generated client id the log uses for the write lock.
var WithClientID = intdurablelog.WithClientID

// WithWriteConcurrency overwrites the default number of appends which can be in flight at the same time.
var WithWriteConcurrency = intdurablelog.WithWriteConcurrency

// WithDelayPolicyNone overwrites the default delay policy with delay policy none.
var WithDelayPolicyNone = intdurablelog.WithDelayPolicyNone

// WithDelayPolicyFixed overwrites the default delay policy with delay policy fixed.
var WithDelayPolicyFixed = intdurablelog.WithDelayPolicyFixed

// WithDelayPolicyRandom overwrites the default delay policy with delay policy random.
var WithDelayPolicyRandom = intdurablelog.WithDelayPolicyRandom

// WithLogger overwrites the default logger.
var WithLogger = intdurablelog.WithLogger
