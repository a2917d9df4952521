package core

// Event is a notification from the reactor back to the protocol core.
// Every event carries the handle it correlates to. Events for the same
// handle are delivered in the order they were produced; events for
// different handles carry no relative ordering.
type Event interface{ isEvent() }

type TimerExpired struct {
	Handle TimerHandle
}

type ConnectionMade struct {
	Handle ConnHandle
}

type MessageReceived struct {
	Handle ConnHandle
	Text   string
}

type ConnectionLost struct {
	Handle ConnHandle
}

func (TimerExpired) isEvent()    {}
func (ConnectionMade) isEvent()  {}
func (MessageReceived) isEvent() {}
func (ConnectionLost) isEvent()  {}
