// Package taskgraph implements a task-graph execution engine: callers
// express a computation as a DAG of side-effecting work units wired with
// typed builder handles, then run that graph in parallel across a fixed
// worker pool while the scheduler respects the declared partial order.
//
// The core pieces are a Graph/Task builder surface that lets callers wire
// dependencies without dangling references, an Executor that keeps a
// per-node pending-dependency counter and a shared FIFO ready-queue guarded
// by a mutex/condition-variable pair, and a Future per value-returning task
// so a caller can later observe what it produced.
//
// Task bodies are opaque callables: the engine invokes them but does not
// constrain what they do internally. Side effects, allocation, and
// thread-safety inside a task body are the caller's responsibility.
package taskgraph

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Executor is the user-facing scheduler described in spec section 2 as
// "Scheduler / Taskflow". It owns a worker pool, the current (undispatched)
// graph, a shared FIFO ready-queue guarded by mu/cond, and the aggregate
// outstanding-node count used to wake WaitForAll callers. Grounded on
// bspgraph.Graph's startWorkers/stepWorker fixed-pool-over-a-shared-channel
// idiom, generalized from "one superstep" to "an unbounded sequence of
// dispatched topologies".
//
// Per spec section 5, Emplace, SilentEmplace, the Task builder methods,
// Dispatch, SilentDispatch, and Dump must only be called from a single
// owner goroutine. WaitForAll and Future.Get may be called from any
// goroutine.
type Executor struct {
	id  uuid.UUID
	cfg ExecutorConfig

	mu   sync.Mutex
	cond *sync.Cond

	currentGraph *graph
	readyQueue   []*node

	// totalOutstanding is the number of not-yet-finished nodes across
	// every topology currently in flight. It reaches zero exactly when
	// there is no ready work left and no worker executing, at which
	// point WaitForAll callers are woken -- the "completion latch" of
	// spec section 2/4.4, implemented globally rather than per-topology
	// since topologies can overlap.
	totalOutstanding int64

	workers      int
	wg           sync.WaitGroup
	shuttingDown bool
	closed       bool

	statsMu              sync.Mutex
	dispatchedTopologies int64
	completedTopologies  int64
	nodesCompleted       int64
}

// NewExecutor constructs an Executor with the given configuration and
// starts its worker pool. A Workers count of zero is legal and selects
// zero-worker ("debug") mode per spec section 4.4.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "taskgraph"
	}

	ex := &Executor{
		id:           uuid.New(),
		cfg:          cfg,
		currentGraph: newGraph(name),
		workers:      cfg.Workers,
	}
	ex.cond = sync.NewCond(&ex.mu)

	ex.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go ex.workerLoop()
	}
	return ex, nil
}

// ID returns the executor's stable identity.
func (ex *Executor) ID() uuid.UUID {
	return ex.id
}

// Emplace accepts n value-returning callables and adds one node per
// callable to the current graph. It returns a Task builder handle and a
// Future per input, in the same order as the arguments, per spec section
// 4.3. A zero-arity call is a no-op that returns empty slices.
func (ex *Executor) Emplace(fns ...Func) ([]*Task, []*Future) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.guardOpenLocked()

	tasks := make([]*Task, len(fns))
	futures := make([]*Future, len(fns))
	for i, fn := range fns {
		n := newNode("", fn, true)
		ex.currentGraph.addNode(n)
		tasks[i] = newTask(ex.currentGraph, n)
		futures[i] = n.future
	}
	return tasks, futures
}

// SilentEmplace is the same as Emplace but without result channels: nodes
// created this way run their body and discard any return value (though a
// TaskObserver still sees the outcome, per the bounded-visibility
// supplement in SPEC_FULL).
func (ex *Executor) SilentEmplace(fns ...SilentFunc) []*Task {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.guardOpenLocked()

	tasks := make([]*Task, len(fns))
	for i, fn := range fns {
		wrapped := wrapSilent(fn)
		n := newNode("", wrapped, false)
		ex.currentGraph.addNode(n)
		tasks[i] = newTask(ex.currentGraph, n)
	}
	return tasks
}

func wrapSilent(fn SilentFunc) Func {
	return func() (interface{}, error) {
		return nil, fn()
	}
}

func (ex *Executor) guardOpenLocked() {
	if ex.closed {
		panic(ErrExecutorClosed)
	}
}

// Dispatch performs the five-step sequence of spec section 4.4: it captures
// the current graph into a topology, replaces the current graph with a
// fresh empty one, computes the source set, pushes it onto the shared
// ready-queue, wakes workers, and returns a Future that fires when the
// topology completes.
func (ex *Executor) Dispatch() *Future {
	ex.mu.Lock()
	ex.guardOpenLocked()
	f := ex.dispatchLocked()
	zeroWorkers := ex.workers == 0
	ex.mu.Unlock()
	ex.cond.Broadcast()

	if zeroWorkers {
		ex.runSync()
	}
	return f
}

// SilentDispatch is the same as Dispatch but discards the completion
// Future, per spec section 6's interface table.
func (ex *Executor) SilentDispatch() {
	ex.Dispatch()
}

// dispatchLocked assumes ex.mu is held. It swaps the current graph out for
// a fresh one and returns the new topology's completion Future.
func (ex *Executor) dispatchLocked() *Future {
	g := ex.currentGraph

	if ex.cfg.DetectCycles {
		if _, ok := g.topologicalOrder(); !ok {
			g.dispatched = true
			ex.currentGraph = newGraph(g.name)
			top := newTopology(nil)
			top.future.set(nil, ErrNotADag)
			return top.future
		}
	}

	g.dispatched = true
	ex.currentGraph = newGraph(g.name)

	nodes := g.nodes
	top := newTopology(nodes)

	ex.statsMu.Lock()
	ex.dispatchedTopologies++
	ex.statsMu.Unlock()

	if len(nodes) == 0 {
		top.complete()
		ex.statsMu.Lock()
		ex.completedTopologies++
		ex.statsMu.Unlock()
		return top.future
	}

	ex.totalOutstanding += int64(len(nodes))
	ex.readyQueue = append(ex.readyQueue, g.sourceNodes()...)
	return top.future
}

// WaitForAll blocks until every dispatched topology has completed and the
// current (undispatched) graph is empty, implicitly dispatching it first if
// it is not. It may be called from any goroutine. On return, the Executor
// holds no in-flight work and no pending nodes.
func (ex *Executor) WaitForAll() {
	ex.mu.Lock()
	if ex.currentGraph.numNodes() > 0 {
		ex.dispatchLocked()
	}
	zeroWorkers := ex.workers == 0
	ex.mu.Unlock()
	ex.cond.Broadcast()

	if zeroWorkers {
		ex.runSync()
	}

	ex.mu.Lock()
	for ex.totalOutstanding > 0 {
		ex.cond.Wait()
	}
	ex.mu.Unlock()
}

// popLocked assumes ex.mu is held and the ready-queue is non-empty.
func (ex *Executor) popLocked() *node {
	n := ex.readyQueue[0]
	ex.readyQueue = ex.readyQueue[1:]
	return n
}

// workerLoop is a single worker's loop, per spec section 4.4: acquire the
// mutex, sleep on the condition variable while the ready-queue is empty and
// the executor isn't shutting down, pop one node, release, run it, then
// requeue any successor whose pending count reaches zero.
func (ex *Executor) workerLoop() {
	defer ex.wg.Done()
	for {
		ex.mu.Lock()
		for len(ex.readyQueue) == 0 && !ex.shuttingDown {
			ex.cond.Wait()
		}
		if len(ex.readyQueue) == 0 {
			ex.mu.Unlock()
			return
		}
		n := ex.popLocked()
		ex.mu.Unlock()

		ex.execNode(n)
	}
}

// runSync drains the ready-queue on the calling goroutine, used for
// zero-worker ("debug") mode per spec section 4.4: the master thread
// executes the same algorithm a worker would, just without ever sleeping on
// the condition variable since there's no concurrent producer to wait on.
func (ex *Executor) runSync() {
	for {
		ex.mu.Lock()
		if len(ex.readyQueue) == 0 {
			ex.mu.Unlock()
			return
		}
		n := ex.popLocked()
		ex.mu.Unlock()

		ex.execNode(n)
	}
}

// execNode runs a single node's body, publishes its result, and enqueues
// any successor whose pending counter reaches zero. This is the piece that
// establishes the happens-before relationship described in spec section 5:
// the atomic fetch-sub here (release) paired with a later observation of
// the zero value (acquire) by whichever goroutine next touches the
// successor.
func (ex *Executor) execNode(n *node) {
	obs := ex.cfg.observer()
	logf := ex.cfg.logf()

	obs.NodeStarted(n.name)
	logf("taskgraph[%s]: topology %s: running task %q", ex.id, n.topology.ID(), n.name)

	value, err := n.run()

	if n.future != nil {
		n.future.set(value, err)
	}
	obs.NodeFinished(n.name, err)
	if err != nil {
		if n.future != nil {
			n.topology.recordError(err)
		}
		logf("taskgraph[%s]: topology %s: task %q failed: %v", ex.id, n.topology.ID(), n.name, err)
	}

	var newlyReady []*node
	for _, succ := range n.successors {
		if atomic.AddInt32(&succ.pending, -1) == 0 {
			newlyReady = append(newlyReady, succ)
		}
	}

	if n.topology.finishNode() {
		n.topology.complete()
		ex.statsMu.Lock()
		ex.completedTopologies++
		ex.statsMu.Unlock()
	}

	ex.statsMu.Lock()
	ex.nodesCompleted++
	ex.statsMu.Unlock()

	ex.mu.Lock()
	if len(newlyReady) > 0 {
		ex.readyQueue = append(ex.readyQueue, newlyReady...)
	}
	ex.totalOutstanding--
	allDone := ex.totalOutstanding == 0
	ex.mu.Unlock()

	if len(newlyReady) > 0 || allDone {
		ex.cond.Broadcast()
	}
}

// Dump returns a textual representation of the current (undispatched)
// graph, formatted exactly per spec section 6.
func (ex *Executor) Dump() string {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.currentGraph.dump()
}

// Graphviz returns the current (undispatched) graph rendered in Graphviz's
// dot language, additive to Dump per SPEC_FULL section 4.
func (ex *Executor) Graphviz() string {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.currentGraph.graphviz()
}

// Stats is a point-in-time runtime snapshot of an Executor, grounded on
// purpleidea-mgmt/lang/funcs/dage's stats struct: a small plain-data
// observability record with its own String() renderer. It is pure
// observability and never affects scheduling.
type Stats struct {
	ID                   uuid.UUID
	Workers              int
	DispatchedTopologies int64
	CompletedTopologies  int64
	NodesCompleted       int64
	Outstanding          int64
	ReadyQueueLength     int
}

// Stats returns a snapshot of the executor's current counters.
func (ex *Executor) Stats() Stats {
	ex.statsMu.Lock()
	dispatched := ex.dispatchedTopologies
	completed := ex.completedTopologies
	nodesCompleted := ex.nodesCompleted
	ex.statsMu.Unlock()

	ex.mu.Lock()
	outstanding := ex.totalOutstanding
	queued := len(ex.readyQueue)
	ex.mu.Unlock()

	return Stats{
		ID:                   ex.id,
		Workers:              ex.workers,
		DispatchedTopologies: dispatched,
		CompletedTopologies:  completed,
		NodesCompleted:       nodesCompleted,
		Outstanding:          outstanding,
		ReadyQueueLength:     queued,
	}
}

// String renders the snapshot in a single human-readable line, matching the
// compact single-line style of the teacher's own debug-output helpers.
func (s Stats) String() string {
	return fmt.Sprintf(
		"taskgraph[%s]: workers=%d dispatched=%d completed=%d nodes_completed=%d outstanding=%d ready=%d",
		s.ID, s.Workers, s.DispatchedTopologies, s.CompletedTopologies, s.NodesCompleted, s.Outstanding, s.ReadyQueueLength,
	)
}

// Close waits for all in-flight and pending work to complete (equivalent to
// an internal WaitForAll, per spec section 4.7), then signals every worker
// to shut down and joins them. It is safe to call Close more than once.
func (ex *Executor) Close() error {
	ex.WaitForAll()

	ex.mu.Lock()
	if ex.closed {
		ex.mu.Unlock()
		return nil
	}
	ex.closed = true
	ex.shuttingDown = true
	ex.mu.Unlock()

	ex.cond.Broadcast()
	ex.wg.Wait()
	return nil
}
