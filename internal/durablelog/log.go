package durablelog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/backbone81/durable-log/internal/fencing"
	"github.com/backbone81/durable-log/internal/pipeline"
	"github.com/backbone81/durable-log/internal/store"
)

// DefaultWriteConcurrency is the number of appends which can be in flight at the same time.
const DefaultWriteConcurrency = pipeline.DefaultCapacity

// QueueStats describes the current load of the append pipeline.
type QueueStats = pipeline.Stats

// Log is a single writer session on a shared store. It needs to be initialized before use and closed afterward.
//
// Log is safe to use from multiple Go routines concurrently.
type Log struct {
	store            *store.Store
	clientID         string
	writeConcurrency int
	delayPolicy      DelayPolicy
	logger           *slog.Logger
	appender         *pipeline.Pipeline[[]byte, LogAddress]

	// The sequence number the next entry will receive. Guarded by the store lock, as assigning the sequence number
	// and inserting the entry need to happen in the same critical section across all logs sharing the store.
	offset int64

	mutex       sync.Mutex
	epoch       int64
	initialized bool
	closed      bool
}

// New creates a new log on top of the given store. The log is not usable before Initialize was called.
func New(s *store.Store, options ...Option) *Log {
	newLog := &Log{
		store:            s,
		clientID:         uuid.NewString(),
		writeConcurrency: DefaultWriteConcurrency,
		delayPolicy:      NewDelayPolicyNone(),
		logger:           slog.Default(),
		offset:           math.MinInt64,
		epoch:            math.MinInt64,
	}
	for _, option := range options {
		option(newLog)
	}
	newLog.logger = newLog.logger.With("clientId", newLog.clientID)
	newLog.appender = pipeline.New(newLog.writeConcurrency, newLog.commit, pipeline.WithName("append"))
	return newLog
}

// ClientID returns the id the log uses for the write lock.
func (l *Log) ClientID() string {
	return l.clientID
}

// Initialize acquires the write lock and positions the log at the end of the store. Any other log which held the
// write lock before is fenced out. Calling Initialize again acquires the write lock again with a new epoch.
func (l *Log) Initialize() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return ErrAlreadyClosed
	}

	epoch := l.store.Gate().Acquire(l.clientID)

	l.store.Lock()
	l.offset = 0
	if last, ok := l.store.LastLocked(); ok {
		l.offset = last.End()
	}
	offset := l.offset
	l.store.Unlock()

	l.epoch = epoch
	l.initialized = true
	l.logger.Debug("Initialized data log.", "epoch", epoch, "offset", offset)
	return nil
}

// Append appends the data as a new entry and returns its address. The data is copied and can be reused by the
// caller afterward. The context only limits how long the caller waits for the result. An append which was already
// submitted is still processed when the context is done.
func (l *Log) Append(ctx context.Context, data []byte) (LogAddress, error) {
	future, err := l.AppendAsync(data)
	if err != nil {
		return LogAddress{}, err
	}
	return future.Wait(ctx)
}

// AppendAsync submits the data as a new entry and returns the future for its address. Addresses are assigned in the
// order of the calls to AppendAsync and futures complete in the same order.
func (l *Log) AppendAsync(data []byte) (*pipeline.Future[LogAddress], error) {
	if err := l.ensurePreconditions(); err != nil {
		return nil, err
	}
	if len(data) > l.store.MaxAppendSize() {
		AppendFailuresTotal.WithLabelValues(failureReasonTooLarge).Inc()
		return nil, fmt.Errorf("%d bytes with a limit of %d bytes: %w", len(data), l.store.MaxAppendSize(), ErrPayloadTooLarge)
	}

	future, err := l.appender.Submit(bytes.Clone(data))
	if errors.Is(err, pipeline.ErrClosed) {
		return nil, ErrAlreadyClosed
	}
	if err != nil {
		return nil, err
	}
	return future, nil
}

// Truncate removes all entries up to and including the given address.
func (l *Log) Truncate(address LogAddress) error {
	if err := l.ensurePreconditions(); err != nil {
		return err
	}
	if err := l.store.Truncate(address.Sequence(), l.clientID); err != nil {
		return l.wrapFencingError(err)
	}
	TruncationsTotal.Inc()
	return nil
}

// Read returns a reader over all entries currently in the log.
func (l *Log) Read() (*Reader, error) {
	return l.ReadFrom(NewLogAddress(math.MinInt64))
}

// ReadFrom returns a reader over all entries currently in the log starting at the given address.
func (l *Log) ReadFrom(address LogAddress) (*Reader, error) {
	if err := l.ensurePreconditions(); err != nil {
		return nil, err
	}
	return newReader(l.store.Iterate(address.Sequence())), nil
}

// Epoch returns the epoch the log received on its last initialization.
func (l *Log) Epoch() (int64, error) {
	if err := l.ensurePreconditions(); err != nil {
		return 0, err
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.epoch, nil
}

// MaxAppendLength returns the maximum payload length of a single append.
func (l *Log) MaxAppendLength() (int, error) {
	if err := l.ensurePreconditions(); err != nil {
		return 0, err
	}
	return l.store.MaxAppendSize(), nil
}

// QueueStatistics returns the current load of the append pipeline.
func (l *Log) QueueStatistics() (QueueStats, error) {
	if err := l.ensurePreconditions(); err != nil {
		return QueueStats{}, err
	}
	return l.appender.Stats(), nil
}

// Close stops accepting appends and releases the write lock. Appends already in flight are still completed. Calling
// Close multiple times is allowed.
func (l *Log) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return nil
	}

	l.appender.Close()
	if err := l.store.Gate().Release(l.clientID); err != nil {
		if !errors.Is(err, fencing.ErrNotOwner) {
			return err
		}
		// Some other writer superseded this one. There is no lock left to release.
		l.logger.Debug("Write lock was already taken over on close.", "error", err)
	}
	l.closed = true
	l.logger.Debug("Closed data log.")
	return nil
}

// commit assigns the sequence number to the data and inserts it into the store. It is called by the append pipeline
// one at a time.
func (l *Log) commit(data []byte) (LogAddress, time.Duration, error) {
	start := time.Now()
	address, err := l.commitEntry(data)
	if err != nil {
		if errors.Is(err, fencing.ErrNotOwner) {
			AppendFailuresTotal.WithLabelValues(failureReasonNotPrimary).Inc()
			l.logger.Warn("Append rejected because the data log was fenced out.", "error", err)
			return LogAddress{}, 0, l.wrapFencingError(err)
		}
		AppendFailuresTotal.WithLabelValues(failureReasonInternal).Inc()
		return LogAddress{}, 0, err
	}
	AppendsTotal.Inc()
	AppendBytesTotal.Add(float64(len(data)))
	CommitDuration.Observe(time.Since(start).Seconds())
	return address, l.delayPolicy.NextDelay(), nil
}

func (l *Log) commitEntry(data []byte) (LogAddress, error) {
	l.store.Lock()
	defer l.store.Unlock()

	// An empty payload occupies no bytes. It gets the current offset as its address without being stored, otherwise
	// the next entry would share its sequence number.
	if len(data) == 0 {
		if err := l.store.Gate().Check(l.clientID); err != nil {
			return LogAddress{}, err
		}
		return NewLogAddress(l.offset), nil
	}

	entry := store.NewEntry(l.offset, data)
	if err := l.store.AppendLocked(entry, l.clientID); err != nil {
		return LogAddress{}, err
	}

	// Only update internals after a successful append.
	l.offset = entry.End()
	return NewLogAddress(entry.SequenceNumber), nil
}

func (l *Log) ensurePreconditions() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return ErrAlreadyClosed
	}
	if !l.initialized {
		return ErrNotInitialized
	}
	return nil
}

func (l *Log) wrapFencingError(err error) error {
	if errors.Is(err, fencing.ErrNotOwner) {
		return fmt.Errorf("%w: %w", ErrNotPrimary, err)
	}
	return err
}
