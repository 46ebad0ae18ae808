package taskgraph

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// topology is a snapshot of a graph committed by one Dispatch call -- the
// scheduler's unit of execution tracking, per the GLOSSARY. It owns the
// atomic outstanding-node counter ("completion latch" in spec section 4.4)
// and aggregates every node error with go-multierror, grounded on
// pipeline.Pipeline.Process's errCh-to-multierror aggregation.
type topology struct {
	id          uuid.UUID
	nodes       []*node
	outstanding int64 // atomic; reaches zero when every node has run

	// future fires (nil, aggregated error-or-nil) once outstanding hits
	// zero. This is the completion channel returned by Dispatch.
	future *Future

	errMu sync.Mutex
	errs  *multierror.Error
}

func newTopology(nodes []*node) *topology {
	t := &topology{
		id:          uuid.New(),
		nodes:       nodes,
		outstanding: int64(len(nodes)),
		future:      newFuture(),
	}
	for _, n := range nodes {
		n.topology = t
	}
	return t
}

// ID returns the topology's uuid, used to disambiguate Logf lines across
// concurrently in-flight topologies on the same Executor.
func (t *topology) ID() uuid.UUID {
	return t.id
}

func (t *topology) recordError(err error) {
	if err == nil {
		return
	}
	t.errMu.Lock()
	t.errs = multierror.Append(t.errs, err)
	t.errMu.Unlock()
}

// finishNode decrements the outstanding counter for one completed node and
// reports whether that decrement drained the topology to zero.
func (t *topology) finishNode() bool {
	return atomic.AddInt64(&t.outstanding, -1) == 0
}

// complete fulfills the topology's future with the aggregated error (or nil
// if every node succeeded).
func (t *topology) complete() {
	t.errMu.Lock()
	var err error
	if t.errs != nil {
		err = t.errs.ErrorOrNil()
	}
	t.errMu.Unlock()
	t.future.set(nil, err)
}
