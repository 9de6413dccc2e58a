package pipeline

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned for items submitted after the pipeline was closed, and for queued items which were not
// dispatched before the pipeline was closed.
var ErrClosed = errors.New("pipeline is closed")

// DefaultCapacity is the number of items which can be in flight at the same time if nothing else is configured.
const DefaultCapacity = 10

// CommitFunc commits a single item. It returns the result for the item and the delay to wait before the result is
// completed. Commits are never executed concurrently within the same pipeline.
type CommitFunc[T any, R any] func(item T) (R, time.Duration, error)

// Stats describes the current load of the pipeline.
type Stats struct {
	// The number of items waiting for a free slot.
	Queued int

	// The number of items which were committed but are not yet through their delay.
	InFlight int

	// The maximum number of items in flight.
	Capacity int
}

// Pipeline commits submitted items in submission order and completes their results in submission order, while
// allowing up to capacity items to wait for their delay concurrently.
//
// Pipeline is safe to use from multiple Go routines concurrently.
type Pipeline[T any, R any] struct {
	mutex sync.Mutex

	commit   CommitFunc[T, R]
	capacity int
	name     string

	inFlight int
	queue    []*request[T, R]
	closed   bool

	// Closed when the most recently submitted item was completed. Each request waits for its predecessor before it
	// completes its own future.
	lastCompleted chan struct{}
}

type request[T any, R any] struct {
	item      T
	future    *Future[R]
	previous  <-chan struct{}
	completed chan struct{}
}

// Option describes the function signature which all pipeline options need to implement.
type Option func(p *pipelineOptions)

type pipelineOptions struct {
	name string
}

// WithName sets the name the pipeline reports its metrics with.
func WithName(name string) Option {
	return func(p *pipelineOptions) {
		p.name = name
	}
}

// New creates a new pipeline which commits items with the given function and allows up to capacity items in flight.
func New[T any, R any](capacity int, commit CommitFunc[T, R], options ...Option) *Pipeline[T, R] {
	newOptions := pipelineOptions{
		name: "default",
	}
	for _, option := range options {
		option(&newOptions)
	}

	lastCompleted := make(chan struct{})
	close(lastCompleted)
	return &Pipeline[T, R]{
		commit:        commit,
		capacity:      max(capacity, 1),
		name:          newOptions.name,
		lastCompleted: lastCompleted,
	}
}

// Submit hands the item to the pipeline and returns the future for its result. Submit never blocks. When all slots
// are taken, the item is queued until a slot becomes free.
func (p *Pipeline[T, R]) Submit(item T) (*Future[R], error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	newRequest := &request[T, R]{
		item:      item,
		future:    newFuture[R](),
		previous:  p.lastCompleted,
		completed: make(chan struct{}),
	}
	p.lastCompleted = newRequest.completed

	// Queued items must be dispatched first to keep the submission order.
	if p.inFlight < p.capacity && len(p.queue) == 0 {
		p.dispatchLocked(newRequest)
	} else {
		p.queue = append(p.queue, newRequest)
		QueuedItems.WithLabelValues(p.name).Inc()
	}
	return newRequest.future, nil
}

// Close stops accepting new items. Items in flight are completed as usual, queued items fail with ErrClosed.
// Calling Close multiple times is allowed.
func (p *Pipeline[T, R]) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for _, queuedRequest := range p.queue {
		go queuedRequest.finish(*new(R), ErrClosed)
	}
	QueuedItems.WithLabelValues(p.name).Sub(float64(len(p.queue)))
	p.queue = nil
}

// Stats returns the current load of the pipeline.
func (p *Pipeline[T, R]) Stats() Stats {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return Stats{
		Queued:   len(p.queue),
		InFlight: p.inFlight,
		Capacity: p.capacity,
	}
}

// dispatchLocked commits the request and starts waiting for its delay. Must be called with the mutex held, which
// serializes all commits of this pipeline in dispatch order.
func (p *Pipeline[T, R]) dispatchLocked(r *request[T, R]) {
	value, delay, err := p.commit(r.item)
	if err != nil {
		// A failed commit does not occupy a slot, but still completes in order.
		go r.finish(value, err)
		return
	}

	p.inFlight++
	InFlightItems.WithLabelValues(p.name).Inc()
	go func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			<-timer.C
		}
		p.release()
		r.finish(value, nil)
	}()
}

// release frees the slot of a request which went through its delay and dispatches queued requests.
func (p *Pipeline[T, R]) release() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.inFlight--
	InFlightItems.WithLabelValues(p.name).Dec()
	for p.inFlight < p.capacity && len(p.queue) > 0 {
		next := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		QueuedItems.WithLabelValues(p.name).Dec()
		p.dispatchLocked(next)
	}
}

// finish waits for the predecessor to complete and then completes the future of this request.
func (r *request[T, R]) finish(value R, err error) {
	<-r.previous
	r.future.complete(value, err)
	close(r.completed)
}
