package pipeline

import "context"

// Future is the eventual result of a submitted item.
type Future[R any] struct {
	done  chan struct{}
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{
		done: make(chan struct{}),
	}
}

// Done returns a channel which is closed when the result is available.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the result is available and returns it.
func (f *Future[R]) Result() (R, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the result is available or the context is done. A context which is done only stops the wait.
// The item itself is still processed.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

func (f *Future[R]) complete(value R, err error) {
	f.value = value
	f.err = err
	close(f.done)
}
