package chat

import (
	"net"

	"github.com/google/uuid"
)

// Client is the server-side handle to one connected peer. It owns a Frame
// and a send-only handle to the dispatcher's intake channel. A Client is
// never shared: at any instant exactly one goroutine holds it and may
// call Recv/Send/Shutdown on it. Ownership moves between goroutines by
// sending the *Client value itself down a channel, never by aliasing a
// pointer across two concurrently-running goroutines.
type Client struct {
	id     uuid.UUID
	frame  *Frame
	intake chan<- *Client
}

// newClient constructs a Client around an accepted connection and a
// handle to the dispatcher's intake channel.
func newClient(conn net.Conn, intake chan<- *Client) *Client {
	return &Client{
		id:     uuid.New(),
		frame:  NewFrame(conn),
		intake: intake,
	}
}

// ID is a server-local correlation id for log lines only; it is never
// sent on the wire and has no meaning to the client.
func (c *Client) ID() uuid.UUID { return c.id }

// RemoteAddr returns the peer's network address, for the accepted
// -connection log line.
func (c *Client) RemoteAddr() net.Addr { return c.frame.conn.RemoteAddr() }

// Recv reads the next Message from this Client's stream.
func (c *Client) Recv() (Message, error) { return c.frame.Recv() }

// Send writes a Message to this Client's stream.
func (c *Client) Send(item Message) error { return c.frame.Send(item) }

// Shutdown closes the underlying socket. After Shutdown, c must not be
// used again by any goroutine.
func (c *Client) Shutdown() {
	_ = c.frame.Close()
}

// dispatch hands c to the dispatcher's intake channel. The caller must
// not touch c again: the dispatcher now owns it.
func (c *Client) dispatch() {
	c.intake <- c
}
