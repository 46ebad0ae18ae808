package taskgraph

import "sync/atomic"

// Func is the signature of a task body that produces a value. The value and
// error are published to the Future returned alongside the Task from
// Emplace. Func is invoked at most once, from whichever worker goroutine
// dequeues the owning node.
type Func func() (interface{}, error)

// SilentFunc is the signature of a task body that produces no observable
// result. Any error it returns is discarded by the scheduler (it never
// blocks or fails downstream nodes) but is still visible to an optional
// TaskObserver, per the "silent task panic visibility" supplement.
type SilentFunc func() error

// node is the heap-allocated record backing a single unit of work. It holds
// the task body, display name, atomic pending-dependency counter, and
// outgoing-edge list described in spec section 3. Once a node's owning graph
// has been dispatched, a node is immutable except for its pending counter
// and its future.
type node struct {
	name string
	fn   Func

	// pending is the number of not-yet-completed incoming edges. It is
	// mutated with atomic fetch-add/fetch-sub, mirroring the
	// release/acquire discipline described in spec section 5: the worker
	// that completes a node releases via the atomic decrement on each
	// successor, and the worker that observes the decremented value
	// reaching zero acquires happens-before visibility of everything the
	// predecessor did.
	pending int32

	// incoming is the number of incoming edges recorded at construction
	// time, used only for the "dependents" count in dump() output. Unlike
	// pending, it is never decremented.
	incoming int

	successors []*node

	// future is non-nil for nodes created via Emplace and nil for nodes
	// created via SilentEmplace.
	future *Future

	// topology is set once this node's owning graph has been captured by
	// a dispatch() call.
	topology *topology
}

func newNode(name string, fn Func, withFuture bool) *node {
	n := &node{
		name: name,
		fn:   fn,
	}
	if withFuture {
		n.future = newFuture()
	}
	return n
}

// String satisfies fmt.Stringer so that nodes print their display name (or
// their arena-assigned empty string) the way the teacher's Vertex/state
// types do.
func (n *node) String() string {
	return n.name
}

func (n *node) pendingCount() int32 {
	return atomic.LoadInt32(&n.pending)
}

// addSuccessor records a u->v edge: v is appended to u's successor list and
// v's pending counter is bumped. Per spec section 3's invariant (iv),
// duplicate edges are not deduplicated: each call simply bumps the
// successor's pending count again, and the scheduler will decrement it the
// same number of times.
func (u *node) addSuccessor(v *node) {
	u.successors = append(u.successors, v)
	v.incoming++
	atomic.AddInt32(&v.pending, 1)
}

// run invokes the task body exactly once, recovering from any panic and
// turning it into an error so that a misbehaving task body can never take
// down a worker goroutine. The returned error is what gets published to the
// node's Future (if any) and surfaced to the topology's aggregated error and
// any TaskObserver.
func (n *node) run() (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return n.fn()
}
