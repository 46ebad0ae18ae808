package taskgraph

import (
	"testing"
	"time"
)

func TestFutureGetBlocksUntilSet(t *testing.T) {
	f := newFuture()
	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := f.Get()
		if err != nil {
			t.Errorf("Get() err = %v, want nil", err)
		}
		if v != "hello" {
			t.Errorf("Get() = %v, want %q", v, "hello")
		}
	}()

	select {
	case <-done:
		t.Fatal("Get() returned before Set was called")
	case <-time.After(20 * time.Millisecond):
	}

	f.set("hello", nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Get() did not unblock after set")
	}
}

func TestFutureReadyNonBlocking(t *testing.T) {
	f := newFuture()
	if f.Ready() {
		t.Fatal("Ready() = true before set")
	}
	f.set(1, nil)
	if !f.Ready() {
		t.Fatal("Ready() = false after set")
	}
}

func TestFutureSetIsIdempotent(t *testing.T) {
	f := newFuture()
	f.set(1, nil)
	f.set(2, nil) // second call must be a no-op, not a panic
	v, err := f.Get()
	if err != nil || v != 1 {
		t.Fatalf("Get() = (%v, %v), want (1, nil)", v, err)
	}
}

func TestFutureDoneChannel(t *testing.T) {
	f := newFuture()
	select {
	case <-f.Done():
		t.Fatal("Done() closed before set")
	default:
	}
	f.set(nil, nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("Done() not closed after set")
	}
}
