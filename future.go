package taskgraph

import (
	"sync"

	"golang.org/x/xerrors"
)

// panicError wraps a recovered panic value into an error, the way a task
// body's "propagated exception" is captured per spec section 3/7.
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return xerrors.Errorf("taskgraph: task panicked: %w", err)
	}
	return xerrors.Errorf("taskgraph: task panicked: %v", r)
}

// Future is the one-shot result channel described in spec section 3. It is
// produced by Emplace and filled exactly once by the worker that runs the
// associated node. Get blocks until a value is available; Ready never
// blocks. A Future may be waited on from any goroutine, matching the
// thread-safety rules in spec section 5.
type Future struct {
	mu    sync.Mutex
	done  chan struct{}
	value interface{}
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// set publishes the task's result. It is only ever called once, by the
// worker that ran the owning node; a second call is a programming error and
// is ignored rather than panicking, since a worker should never observe a
// node twice (spec invariant (iii): "a node is executed exactly once per
// dispatch").
func (f *Future) set(value interface{}, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return // already set; should never happen
	default:
	}
	f.value = value
	f.err = err
	close(f.done)
}

// Get blocks until the task completes and returns its produced value. If
// the task body propagated an exception (panicked) or returned a non-nil
// error, that error is returned here, standing in for the "re-raises it on
// get" behavior described in spec section 3 for a host language with
// exceptions.
func (f *Future) Get() (interface{}, error) {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Ready reports whether the task has completed, without blocking.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the future's value is ready, so
// that callers can select on completion alongside other channels.
func (f *Future) Done() <-chan struct{} {
	return f.done
}
