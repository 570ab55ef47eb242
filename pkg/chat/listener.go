package chat

import (
	"context"
	"net"

	"github.com/jonathancary1/anonymous-chat-server/internal/logging"
)

// Listener accepts TCP connections and feeds each one into the
// request-intake loop, after spawning the singleton pairing Dispatcher
// exactly once.
type Listener struct {
	log *logging.Logger
}

// NewListener constructs a Listener that logs through log.
func NewListener(log *logging.Logger) *Listener {
	return &Listener{log: log}
}

// ListenOption configures a single Listen call.
type ListenOption func(*listenConfig)

type listenConfig struct {
	ready chan<- net.Addr
}

// WithReady reports the bound address once the listener is up, before
// the accept loop starts. Tests use this to discover the ephemeral port
// behind "127.0.0.1:0".
func WithReady(ready chan<- net.Addr) ListenOption {
	return func(c *listenConfig) { c.ready = ready }
}

// Listen binds addr and accepts connections until ctx is cancelled.
// Binding the listener is the only fatal error path; every
// per-connection error is handled at connection granularity and never
// returned from here.
func (l *Listener) Listen(ctx context.Context, addr string, opts ...ListenOption) error {
	var cfg listenConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	if cfg.ready != nil {
		cfg.ready <- ln.Addr()
	}

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	dispatcher := NewDispatcher(l.log)
	go dispatcher.Run()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.log.Warnw("accept failed", "err", err)
			continue
		}

		client := newClient(conn, dispatcher.Intake())
		l.log.Infow("accepted connection",
			"remote_addr", conn.RemoteAddr().String(),
			"client_id", client.ID().String(),
		)
		go runIntake(client, nil)
	}
}
