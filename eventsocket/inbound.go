package eventsocket

import (
	"context"
	"fmt"
	"net"
)

// Dial opens an Inbound connection: it dials addr, waits for the
// switch's initial auth/request, authenticates with password, and
// starts the dispatch loop (spec.md §4.5).
func Dial(ctx context.Context, addr, password string, opts ...DialOption) (*Connection, error) {
	o := defaultDialOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	c := newConnection(conn, o.eventBuffer, o.logger)

	raw, err := decodeRawEvent(c.br)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if ct, _ := raw.Header("Content-Type"); ct != ContentTypeAuthRequest {
		conn.Close()
		return nil, fmt.Errorf("%w: missing initial auth/request", ErrConnect)
	}

	// No dispatch loop is running yet during the auth handshake, so the
	// enqueue-before-flush discipline SendRecv uses later doesn't apply
	// here: Dial reads the auth reply directly off the wire itself.
	cmd, err := Auth(password)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Write(cmd.Bytes()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	authRaw, err := decodeRawEvent(c.br)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	authEv := newEvent(authRaw)
	if !authEv.ReplyOK() {
		conn.Close()
		return nil, ErrAuthFailed
	}

	c.start()
	return c, nil
}
