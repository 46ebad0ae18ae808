package taskgraph

import (
	"errors"
	"testing"
)

func TestNodeRunReturnsValue(t *testing.T) {
	n := newNode("A", func() (interface{}, error) { return 7, nil }, true)
	v, err := n.run()
	if err != nil || v != 7 {
		t.Fatalf("run() = (%v, %v), want (7, nil)", v, err)
	}
}

func TestNodeRunPropagatesError(t *testing.T) {
	want := errors.New("bad")
	n := newNode("A", func() (interface{}, error) { return nil, want }, true)
	_, err := n.run()
	if err != want {
		t.Fatalf("run() err = %v, want %v", err, want)
	}
}

func TestNodeRunRecoversPanic(t *testing.T) {
	n := newNode("A", func() (interface{}, error) { panic("boom") }, true)
	_, err := n.run()
	if err == nil {
		t.Fatal("run() err = nil after a panicking body")
	}
}

func TestNodeStringIsName(t *testing.T) {
	n := newNode("my-task", nil, false)
	if got := n.String(); got != "my-task" {
		t.Fatalf("String() = %q, want %q", got, "my-task")
	}
}

func TestNodeAddSuccessorIsNotDeduplicated(t *testing.T) {
	u := newNode("U", nil, false)
	v := newNode("V", nil, false)
	u.addSuccessor(v)
	u.addSuccessor(v)

	if len(u.successors) != 2 {
		t.Fatalf("len(successors) = %d, want 2", len(u.successors))
	}
	if v.pendingCount() != 2 {
		t.Fatalf("v.pendingCount() = %d, want 2", v.pendingCount())
	}
	if v.incoming != 2 {
		t.Fatalf("v.incoming = %d, want 2", v.incoming)
	}
}
