package taskgraph

import "golang.org/x/xerrors"

// TaskObserver is an optional, purely-observational hook invoked by a
// worker goroutine immediately around a node body's execution. It does not
// affect scheduling order, cancellation, or results -- it exists only so
// that a caller can watch an Executor work, grounded on
// bspgraph.ExecutorCallbacks' PreStep/PostStep shape, generalized here from
// "per-superstep" to "per-node".
type TaskObserver interface {
	// NodeStarted is called just before a node's body is invoked.
	NodeStarted(name string)

	// NodeFinished is called just after a node's body returns, with any
	// error it produced (including a discarded silent-task error, per
	// the "bounded silent-task panic visibility" supplement).
	NodeFinished(name string, err error)
}

// noopObserver is the default TaskObserver: it does nothing.
type noopObserver struct{}

func (noopObserver) NodeStarted(string)          {}
func (noopObserver) NodeFinished(string, error) {}

// ExecutorConfig configures a new Executor. Grounded on
// bspgraph.GraphConfig/crawler.Config: a plain option struct with a private
// validate() method invoked from the constructor.
type ExecutorConfig struct {
	// Name identifies the executor and the graph it starts with; it
	// shows up in Graphviz() output.
	Name string

	// Workers is the size of the fixed worker pool. Zero is legal and
	// selects "zero-worker mode" (spec section 4.4): the caller's own
	// goroutine executes all tasks synchronously inside Dispatch (or
	// SilentDispatch) or WaitForAll.
	Workers int

	// DetectCycles turns on the optional, off-by-default dev-mode cycle
	// check described in spec section 7. When enabled, Dispatch runs a
	// topological sort before committing a topology and returns
	// ErrNotADag if the graph isn't a DAG, instead of silently producing
	// a topology that can never complete.
	DetectCycles bool

	// Observer receives NodeStarted/NodeFinished notifications. May be
	// nil, in which case notifications are skipped.
	Observer TaskObserver

	// Logf, if set, receives free-form diagnostic log lines, grounded on
	// purpleidea-mgmt/lang/funcs/dage.Engine.Logf.
	Logf func(format string, v ...interface{})
}

func (cfg *ExecutorConfig) validate() error {
	if cfg.Workers < 0 {
		return xerrors.Errorf("taskgraph: worker count must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

func (cfg *ExecutorConfig) observer() TaskObserver {
	if cfg.Observer == nil {
		return noopObserver{}
	}
	return cfg.Observer
}

func (cfg *ExecutorConfig) logf() func(format string, v ...interface{}) {
	if cfg.Logf == nil {
		return func(string, ...interface{}) {}
	}
	return cfg.Logf
}
