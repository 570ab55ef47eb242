package chat

import "github.com/jonathancary1/anonymous-chat-server/internal/logging"

// Dispatcher is the singleton pairing coordinator: it buffers at most one
// waiting Client and pairs the next arrival with it. All coordination is
// via its intake channel; the Dispatcher holds no locks.
type Dispatcher struct {
	intake chan *Client
	log    *logging.Logger
}

// NewDispatcher constructs a Dispatcher with a capacity-1 intake channel:
// at most one Client can be waiting for a peer at a time.
func NewDispatcher(log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		intake: make(chan *Client, 1),
		log:    log,
	}
}

// Intake returns a send-only handle to the dispatcher's intake channel,
// handed to every Client at construction.
func (d *Dispatcher) Intake() chan<- *Client {
	return d.intake
}

// Run is the dispatcher's main loop. It returns once the intake channel
// has been permanently closed and drained.
func (d *Dispatcher) Run() {
	for {
		left, ok := <-d.intake
		if !ok {
			d.log.Info("dispatcher intake drained; all senders have dropped")
			return
		}
		if !d.handle(left) {
			d.log.Info("dispatcher intake drained; all senders have dropped")
			return
		}
	}
}

// handle implements the three-way wait for a single held Client. It
// returns false when the intake channel turned out to be permanently
// closed, signaling Run to stop.
func (d *Dispatcher) handle(left *Client) bool {
	pending := startRecv(left)

	select {
	case out := <-pending.ch:
		// (a): left.Recv() produced a result.
		if out.err == nil && !out.msg.IsConnection() && out.msg.SessionKind() == SessionEnd {
			// A lone waiter is allowed to cancel its wait. Sending the
			// End ack blocks this dispatcher iteration; only the
			// resumed intake loop is spawned.
			sendSessionEndThenResume(left, nil)
		} else {
			left.Shutdown()
		}
		return true

	case right, ok := <-d.intake:
		// (b): a second Client arrived, or (c): the channel closed.
		if !ok {
			left.Shutdown()
			return false
		}
		go startSession(left, pending, right)
		return true
	}
}
