package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/portal/internal/core"
)

// inboxMsg is one item on the dispatcher inbox: either a submitted action,
// or a notification reported back by a spawned task.
type inboxMsg interface{ isInboxMsg() }

type actionMsg struct{ act core.Action }

type connUpMsg struct{ h core.ConnHandle }

type connFailedMsg struct {
	h   core.ConnHandle
	err error
}

type connTextMsg struct {
	h    core.ConnHandle
	text string
}

type connDownMsg struct{ h core.ConnHandle }

type timerFiredMsg struct{ h core.TimerHandle }

func (actionMsg) isInboxMsg()     {}
func (connUpMsg) isInboxMsg()     {}
func (connFailedMsg) isInboxMsg() {}
func (connTextMsg) isInboxMsg()   {}
func (connDownMsg) isInboxMsg()   {}
func (timerFiredMsg) isInboxMsg() {}

// Reactor translates actions from a synchronous protocol core into real
// asynchronous I/O and reports observed outcomes back as events.
//
// Process is a non-blocking submission: it enqueues onto the unbounded
// inbox and returns. The run loop is the only goroutine that touches the
// handle registry; everything spawned reports back through the inbox.
type Reactor struct {
	connector core.Connector
	exec      core.Executor
	onFault   func(error)

	inbox  *unbounded[inboxMsg]
	events *unbounded[core.Event]
	reg    *registry
}

func New(connector core.Connector, exec core.Executor) *Reactor {
	r := &Reactor{
		connector: connector,
		exec:      exec,
		inbox:     newUnbounded[inboxMsg](),
		events:    newUnbounded[core.Event](),
		reg:       newRegistry(),
	}
	r.onFault = func(err error) {
		log.Error().Err(err).Str("module", "app.reactor").Msg("reactor fault")
	}
	return r
}

// OnFault installs the handler for dial failures and contract violations.
// The handler runs on the dispatcher loop; it must not call Process.
// Must be set before Run.
func (r *Reactor) OnFault(fn func(error)) { r.onFault = fn }

// Process submits one action. It never waits on network I/O.
func (r *Reactor) Process(act core.Action) {
	r.inbox.in <- actionMsg{act: act}
}

// Events is the single outbound conduit to the core. It is never closed
// during normal operation.
func (r *Reactor) Events() <-chan core.Event { return r.events.out }

// Run consumes the inbox until ctx is cancelled. Call it on its own
// goroutine; every other method is safe to call concurrently with it.
func (r *Reactor) Run(ctx context.Context) {
	log.Info().Str("module", "app.reactor").Msg("dispatcher loop running")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reactor").Msg("dispatcher loop stopped")
			return
		case msg := <-r.inbox.out:
			r.handle(ctx, msg)
		}
	}
}

func (r *Reactor) handle(ctx context.Context, msg inboxMsg) {
	switch m := msg.(type) {
	case actionMsg:
		r.apply(ctx, m.act)
	case connUpMsg:
		if _, ok := r.reg.conn(m.h); ok {
			r.emit(core.ConnectionMade{Handle: m.h})
		}
	case connFailedMsg:
		if e, ok := r.reg.conn(m.h); ok {
			e.outbound.discard()
			r.reg.unbindConn(m.h)
			r.fault(fmt.Errorf("open conn %d: %w", m.h, m.err))
		} else if e, ok := r.reg.drained(m.h); ok {
			// closed while dialing; the establishment failure must still
			// be observable, there will be no ConnectionLost
			e.outbound.discard()
			r.fault(fmt.Errorf("open conn %d: %w", m.h, m.err))
		}
	case connTextMsg:
		if _, ok := r.reg.conn(m.h); ok {
			r.emit(core.MessageReceived{Handle: m.h, Text: m.text})
		} else {
			log.Debug().Uint64("conn", uint64(m.h)).Str("module", "app.reactor").
				Msg("text frame for unregistered handle dropped")
		}
	case connDownMsg:
		if e, ok := r.reg.conn(m.h); ok {
			e.outbound.discard()
			r.reg.unbindConn(m.h)
			r.emit(core.ConnectionLost{Handle: m.h})
		} else if e, ok := r.reg.drained(m.h); ok {
			e.outbound.discard()
			// terminal event after a Close action; exactly one may pass
			r.emit(core.ConnectionLost{Handle: m.h})
		}
	case timerFiredMsg:
		if r.reg.unbindTimer(m.h) {
			r.emit(core.TimerExpired{Handle: m.h})
		}
	}
}

func (r *Reactor) apply(ctx context.Context, act core.Action) {
	switch a := act.(type) {
	case core.StartTimer:
		r.startTimer(a)
	case core.CancelTimer:
		// advisory: suppresses the event, cannot interrupt the wait
		r.reg.unbindTimer(a.Handle)
	case core.Open:
		r.open(ctx, a)
	case core.Send:
		e, ok := r.reg.conn(a.Handle)
		if !ok {
			r.fault(fmt.Errorf("send on conn %d: %w", a.Handle, ErrUnknownHandle))
			return
		}
		e.outbound.in <- core.OutFrame{Text: a.Text}
	case core.Close:
		e, ok := r.reg.conn(a.Handle)
		if !ok {
			r.fault(fmt.Errorf("close conn %d: %w", a.Handle, ErrUnknownHandle))
			return
		}
		e.outbound.in <- core.OutFrame{Close: true}
		// closing in (rather than discarding) lets the write pump still
		// take the close frame; no further frames can be queued
		close(e.outbound.in)
		r.reg.drain(a.Handle, e)
	}
}

func (r *Reactor) open(ctx context.Context, a core.Open) {
	entry := &connEntry{outbound: newUnbounded[core.OutFrame]()}
	if err := r.reg.bindConn(a.Handle, entry); err != nil {
		r.fault(fmt.Errorf("open conn %d: %w", a.Handle, err))
		return
	}
	rep := reporter{r: r}
	r.exec.Go(func() {
		r.connector.Run(ctx, a.URL, a.Handle, entry.outbound.out, rep)
	})
}

func (r *Reactor) emit(ev core.Event) {
	r.events.in <- ev
}

func (r *Reactor) fault(err error) {
	r.onFault(err)
}

// reporter is the connector-facing side of the dispatcher: every
// notification becomes an inbox message, keeping registry access inside
// the run loop.
type reporter struct{ r *Reactor }

func (p reporter) Established(h core.ConnHandle) { p.r.inbox.in <- connUpMsg{h: h} }

func (p reporter) Failed(h core.ConnHandle, err error) {
	p.r.inbox.in <- connFailedMsg{h: h, err: err}
}

func (p reporter) Text(h core.ConnHandle, text string) {
	p.r.inbox.in <- connTextMsg{h: h, text: text}
}

func (p reporter) Lost(h core.ConnHandle) { p.r.inbox.in <- connDownMsg{h: h} }

var _ core.ConnReporter = reporter{}
