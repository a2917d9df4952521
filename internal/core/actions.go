package core

// ConnHandle and TimerHandle are opaque correlation ids minted by the caller.
// The two namespaces are independent; a handle must not be reused for a
// different resource while it is still registered.
type ConnHandle uint64

type TimerHandle uint64

// Action is a request from the protocol core to the reactor.
type Action interface{ isAction() }

// StartTimer schedules a one-shot timer. Seconds is fractional; NaN and
// negative values are clamped to zero.
type StartTimer struct {
	Handle  TimerHandle
	Seconds float64
}

// CancelTimer removes a pending timer. Cancelling an unknown or already
// fired handle is a no-op.
type CancelTimer struct {
	Handle TimerHandle
}

// Open establishes a websocket connection to URL.
type Open struct {
	Handle ConnHandle
	URL    string
}

// Send enqueues a text payload on an open connection.
type Send struct {
	Handle ConnHandle
	Text   string
}

// Close enqueues a close request and unregisters the handle.
type Close struct {
	Handle ConnHandle
}

func (StartTimer) isAction()  {}
func (CancelTimer) isAction() {}
func (Open) isAction()        {}
func (Send) isAction()        {}
func (Close) isAction()       {}
