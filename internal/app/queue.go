package app

import "github.com/eapache/queue"

// unbounded is a many-producer/one-consumer conduit that never blocks the
// producer. A ring-backed FIFO sits between the two channels, so a stalled
// consumer grows memory instead of stalling the sender. Used for the event
// channel, the dispatcher inbox and every connection's outbound queue.
type unbounded[T any] struct {
	in   chan T
	out  chan T
	stop chan struct{}
}

func newUnbounded[T any]() *unbounded[T] {
	u := &unbounded[T]{
		in:   make(chan T),
		out:  make(chan T),
		stop: make(chan struct{}),
	}
	go u.pump()
	return u
}

// discard stops the pump and drops anything still buffered. This is how
// per-connection queues are released: their consumer is the write pump,
// which may never have started (dial failure) or already exited
// (connection lost), so draining to out would pin the pump forever.
// Closing in instead flushes the buffer to out first, which is only
// right for the inbox and event queues that always have a consumer.
// At most one of discard/close(in) terminates a given queue's producer
// side; the dispatcher is the single caller of both.
func (u *unbounded[T]) discard() {
	close(u.stop)
}

func (u *unbounded[T]) pump() {
	buf := queue.New()
	for {
		if buf.Length() == 0 {
			select {
			case v, ok := <-u.in:
				if !ok {
					close(u.out)
					return
				}
				buf.Add(v)
			case <-u.stop:
				return
			}
		}
		select {
		case v, ok := <-u.in:
			if !ok {
				u.flush(buf)
				return
			}
			buf.Add(v)
		case u.out <- buf.Peek().(T):
			buf.Remove()
		case <-u.stop:
			return
		}
	}
}

// flush hands the remaining buffer to the consumer after in closed, still
// honoring a late discard so the pump can never be pinned on a consumer
// that went away mid-drain.
func (u *unbounded[T]) flush(buf *queue.Queue) {
	for buf.Length() > 0 {
		select {
		case u.out <- buf.Peek().(T):
			buf.Remove()
		case <-u.stop:
			return
		}
	}
	close(u.out)
}
