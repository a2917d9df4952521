package core

import "context"

// OutFrame is one queued outbound item for a connection: a text payload,
// or a close request that ends the write loop after a close frame is sent.
type OutFrame struct {
	Text  string
	Close bool
}

// ConnReporter receives connection lifecycle notifications from a running
// connector. Implemented by the dispatcher; the connector never touches the
// handle registry directly.
type ConnReporter interface {
	Established(ConnHandle)
	Failed(ConnHandle, error)
	Text(ConnHandle, string)
	Lost(ConnHandle)
}

// Connector establishes one websocket connection per Open action and runs
// its two forwarding loops (wire→reporter, outbound→wire) until the
// connection is gone. Run blocks for the lifetime of the read loop.
type Connector interface {
	Run(ctx context.Context, url string, h ConnHandle, outbound <-chan OutFrame, report ConnReporter)
}

// Executor schedules reactor tasks. The backend is chosen once at startup
// and used uniformly for every spawned loop and timer wait.
type Executor interface {
	Go(fn func())
}
