package eventsocket

import (
	"context"
	"fmt"
	"net"
)

// CallContext is the CHANNEL_DATA RawEvent the switch delivers after an
// Outbound `connect`, identifying the call leg (spec.md §3). It is
// indexable by header name, notably Unique-ID.
type CallContext struct {
	raw *RawEvent
}

// Header looks up a CHANNEL_DATA header by exact name.
func (cc *CallContext) Header(name string) (string, bool) {
	if cc == nil || cc.raw == nil {
		return "", false
	}
	return cc.raw.Header(name)
}

// Headers returns the CHANNEL_DATA header block as a map, for logging or
// forwarding the whole thing.
func (cc *CallContext) Headers() map[string]string {
	if cc == nil || cc.raw == nil {
		return nil
	}
	return cc.raw.HeaderMap()
}

// Handler is invoked for each Outbound connection once the connect/
// myevents handshake has completed. info is never nil.
type Handler func(c *Connection, info *CallContext)

// ListenAndServe accepts connections from FreeSWITCH and, for each one,
// performs the Outbound handshake before invoking handler in its own
// goroutine (spec.md §4.6). Unlike the teacher's ListenAndServe, which
// let the handler itself send `connect`, this owns the handshake so the
// handler always receives a ready CallContext.
func ListenAndServe(ctx context.Context, addr string, cfg Config, handler Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go func() {
			c, info, err := Handshake(conn, cfg)
			if err != nil {
				conn.Close()
				return
			}
			handler(c, info)
		}()
	}
}

// Handshake performs the Outbound connect/myevents handshake on an
// already-accepted net.Conn and starts its dispatch loop (spec.md §4.6).
func Handshake(conn net.Conn, cfg Config) (*Connection, *CallContext, error) {
	c := newConnection(conn, cfg.EventBuffer, cfg.Logger)
	c.start()

	reply, err := c.SendRecv(context.Background(), Connect())
	if err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if _, ok := reply.Header("Unique-ID"); !ok {
		c.Close()
		return nil, nil, fmt.Errorf("%w: connect reply missing Unique-ID", ErrHandshake)
	}
	info := &CallContext{raw: reply.Raw()}
	c.info = info

	if err := applyOutboundConfig(c, cfg); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	return c, info, nil
}

// applyOutboundConfig issues linger/myevents around the switch's async
// execution mode according to cfg.AsyncMode's ordering (spec.md §4.6).
// FreeSWITCH enters async mode implicitly once `myevents` (or any
// subscription) is issued on an Outbound socket in "async" dial string
// mode; AsyncMode here governs whether linger is requested before that
// happens (so it covers the whole call) or after (so it only covers the
// remainder).
func applyOutboundConfig(c *Connection, cfg Config) error {
	ctx := context.Background()

	issueLinger := func() error {
		if !cfg.Linger {
			return nil
		}
		_, err := c.SendRecv(ctx, Linger())
		return err
	}
	issueMyEvents := func() error {
		if !cfg.SubscribeMyEvents {
			return nil
		}
		_, err := c.SendRecv(ctx, MyEventsFormat(cfg.EventFormat))
		return err
	}

	if cfg.AsyncMode {
		if err := issueMyEvents(); err != nil {
			return err
		}
		return issueLinger()
	}
	if err := issueLinger(); err != nil {
		return err
	}
	return issueMyEvents()
}
