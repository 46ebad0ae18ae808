package taskgraph

import "golang.org/x/xerrors"

// ErrGraphDispatched is panicked with (per the usage-error contract in spec
// section 7) when a caller attempts to mutate a graph that has already been
// captured by a dispatch() call.
var ErrGraphDispatched = xerrors.New("taskgraph: graph already dispatched")

// ErrCrossGraphEdge is panicked with when a builder operation tries to wire
// an edge between two Task handles that belong to different graphs.
var ErrCrossGraphEdge = xerrors.New("taskgraph: cannot wire an edge across two different graphs")

// ErrNotADag is the error carried by the Future that Dispatch returns when the
// executor was constructed with DetectCycles enabled and the current graph
// contains a cycle.
var ErrNotADag = xerrors.New("taskgraph: graph is not a dag")

// ErrExecutorClosed is panicked with by Emplace, SilentEmplace and Dispatch
// when the executor has already been closed.
var ErrExecutorClosed = xerrors.New("taskgraph: executor is closed")
