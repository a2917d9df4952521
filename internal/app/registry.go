package app

import (
	"errors"

	"github.com/dkeye/portal/internal/core"
)

var (
	// ErrUnknownHandle marks a Send or Close on a handle with no live
	// registration. It means the core and the reactor have desynchronized.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrAlreadyRegistered marks a handle reused while still registered.
	ErrAlreadyRegistered = errors.New("handle already registered")
)

// connEntry is the live state of one registered connection: the inlet of its
// unbounded outbound queue.
type connEntry struct {
	outbound *unbounded[core.OutFrame]
}

// registry maps handles to live resources. It is owned and mutated
// exclusively by the dispatcher's run loop; that single-writer rule is what
// makes it lock-free. Spawned tasks report back through the inbox, never
// by touching this table.
//
// draining holds connection handles removed by a Close action whose
// terminal ConnectionLost has not been observed yet, so exactly one
// terminal event can still pass after removal and nothing after it.
type registry struct {
	conns    map[core.ConnHandle]*connEntry
	timers   map[core.TimerHandle]struct{}
	draining map[core.ConnHandle]*connEntry
}

func newRegistry() *registry {
	return &registry{
		conns:    make(map[core.ConnHandle]*connEntry),
		timers:   make(map[core.TimerHandle]struct{}),
		draining: make(map[core.ConnHandle]*connEntry),
	}
}

func (r *registry) bindConn(h core.ConnHandle, e *connEntry) error {
	if _, ok := r.conns[h]; ok {
		return ErrAlreadyRegistered
	}
	r.conns[h] = e
	return nil
}

func (r *registry) conn(h core.ConnHandle) (*connEntry, bool) {
	e, ok := r.conns[h]
	return e, ok
}

func (r *registry) unbindConn(h core.ConnHandle) {
	delete(r.conns, h)
}

// drain parks the entry until its terminal notification arrives; the
// queue stays reachable so the dispatcher can release it then.
func (r *registry) drain(h core.ConnHandle, e *connEntry) {
	delete(r.conns, h)
	r.draining[h] = e
}

// drained returns the parked entry if h was waiting for its terminal
// event, clearing it.
func (r *registry) drained(h core.ConnHandle) (*connEntry, bool) {
	e, ok := r.draining[h]
	if ok {
		delete(r.draining, h)
	}
	return e, ok
}

func (r *registry) bindTimer(h core.TimerHandle) error {
	if _, ok := r.timers[h]; ok {
		return ErrAlreadyRegistered
	}
	r.timers[h] = struct{}{}
	return nil
}

// unbindTimer reports whether the timer was still pending.
func (r *registry) unbindTimer(h core.TimerHandle) bool {
	if _, ok := r.timers[h]; !ok {
		return false
	}
	delete(r.timers, h)
	return true
}
