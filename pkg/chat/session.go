package chat

import "golang.org/x/sync/errgroup"

// runIntake is the per-connection request-intake loop. It owns c
// exclusively until it either dispatches c to the pairing coordinator or
// shuts c's socket down.
//
// pending, if non-nil, is a recvFuture started by an earlier stage (the
// dispatcher, or the session value-exchange loop) whose read had not yet
// completed when c was handed back here; its result is consumed as this
// loop's first iteration instead of issuing a second, concurrent Recv on
// the same connection (see recv.go).
func runIntake(c *Client, pending *recvFuture) {
	for {
		var out recvOutcome
		if pending != nil {
			out = <-pending.ch
			pending = nil
		} else {
			out.msg, out.err = c.Recv()
		}

		if out.err != nil {
			c.Shutdown()
			return
		}

		if out.msg.IsConnection() {
			sendConnectionEnd(c)
			return
		}

		switch out.msg.SessionKind() {
		case SessionEnd, SessionValue:
			// Stray frames are tolerated before a session exists.
			continue
		case SessionRequest:
			c.dispatch()
			return
		default:
			// Session::Success is never valid from a client.
			c.Shutdown()
			return
		}
	}
}

// sendConnectionEnd acknowledges Connection::End and tears the socket
// down unconditionally.
func sendConnectionEnd(c *Client) {
	_ = c.Send(NewConnectionEnd())
	c.Shutdown()
}

// sendSessionEndThenResume sends a graceful Session::End to c. On
// success it resumes c's request-intake loop with the given leftover
// pending read (spawned as its own goroutine, since the loop runs for
// the remaining lifetime of the connection); on failure it shuts c down.
// This is the single helper behind every disposition that offers a peer
// a clean way back to waiting for a new session.
func sendSessionEndThenResume(c *Client, pending *recvFuture) {
	if err := c.Send(NewSessionEnd()); err != nil {
		c.Shutdown()
		return
	}
	go runIntake(c, pending)
}

// startSession runs the start-of-session handshake for a freshly paired
// (a, b). aPending is a's still-unconsumed recv from the dispatcher's
// wait (see dispatcher.go); b has never been read from yet.
func startSession(a *Client, aPending *recvFuture, b *Client) {
	var errA, errB error
	var g errgroup.Group
	g.Go(func() error {
		errA = a.Send(NewSessionSuccess())
		return errA
	})
	g.Go(func() error {
		errB = b.Send(NewSessionSuccess())
		return errB
	})
	_ = g.Wait()

	switch {
	case errA == nil && errB == nil:
		runValueExchange(a, aPending, b, startRecv(b))
	case errA != nil && errB == nil:
		a.Shutdown()
		sendSessionEndThenResume(b, nil)
	case errA == nil && errB != nil:
		b.Shutdown()
		sendSessionEndThenResume(a, aPending)
	default:
		a.Shutdown()
		b.Shutdown()
	}
}

// endBoth sends a graceful Session::End to both peers of a session
// concurrently, so neither peer waits on the other's acknowledgment.
func endBoth(a *Client, aPending *recvFuture, b *Client, bPending *recvFuture) {
	var g errgroup.Group
	g.Go(func() error {
		sendSessionEndThenResume(a, aPending)
		return nil
	})
	g.Go(func() error {
		sendSessionEndThenResume(b, bPending)
		return nil
	})
	_ = g.Wait()
}

// runValueExchange is the value-exchange loop: it races a and b's reads
// against each other, relaying whichever Session::Value arrives to the
// other peer, until one side ends the session or fails.
func runValueExchange(a *Client, aPending *recvFuture, b *Client, bPending *recvFuture) {
	for {
		select {
		case out := <-aPending.ch:
			if !stepSource(a, &aPending, b, bPending, out) {
				return
			}
		case out := <-bPending.ch:
			if !stepSource(b, &bPending, a, aPending, out) {
				return
			}
		}
	}
}

// stepSource handles one value-exchange round won by source.
// sourcePending is replaced with a fresh recvFuture when the loop is
// going to continue waiting on source again; targetPending is the
// target's still-unconsumed leftover read, threaded through unchanged
// whenever target is handed off without having fired this round.
func stepSource(
	source *Client, sourcePending **recvFuture,
	target *Client, targetPending *recvFuture,
	out recvOutcome,
) bool {
	if out.err == nil && !out.msg.IsConnection() {
		switch out.msg.SessionKind() {
		case SessionValue:
			if err := target.Send(NewSessionValue(out.msg.Value())); err != nil {
				target.Shutdown()
				sendSessionEndThenResume(source, nil)
				return false
			}
			*sourcePending = startRecv(source)
			return true
		case SessionEnd:
			endBoth(source, nil, target, targetPending)
			return false
		}
	}

	// Recv error, Connection::End, a stray Session::Request, or a stray
	// Session::Success: source is misbehaving or gone, tear it down and
	// offer target a graceful way out.
	source.Shutdown()
	sendSessionEndThenResume(target, targetPending)
	return false
}
