package eventsocket

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const defaultEventBuffer = 16 // matches the teacher's eventsBuffer

// Connection owns the transport, the codec/dispatcher state, and the
// pending-reply queue for one ESL session, whether established by Dial
// (Inbound) or Handshake (Outbound). The write half belongs exclusively to
// Connection; the read half belongs to the dispatcher goroutine
// (spec.md §3).
type Connection struct {
	conn net.Conn
	br   *bufio.Reader

	mu      sync.Mutex // guards pending + the write half together
	pending []*pendingReply

	events   chan *Event
	stopping chan struct{} // closed by an explicit Close()
	closed   chan struct{} // closed once the dispatch loop has torn down

	draining atomic.Bool

	closeErrMu sync.Mutex
	closeErr   error
	failOnce   sync.Once
	connClose  sync.Once
	stopOnce   sync.Once

	logger Logger
	tr     spanTracer

	eg *errgroup.Group

	info *CallContext // non-nil only for Outbound connections
}

func newConnection(conn net.Conn, eventBuffer int, logger Logger) *Connection {
	if eventBuffer <= 0 {
		eventBuffer = defaultEventBuffer
	}
	if logger == nil {
		logger = defaultLogger()
	}
	c := &Connection{
		conn:     conn,
		br:       bufio.NewReaderSize(conn, bufferSize),
		events:   make(chan *Event, eventBuffer),
		stopping: make(chan struct{}),
		closed:   make(chan struct{}),
		logger:   logger,
		tr:       newSpanTracer(),
	}
	return c
}

const bufferSize = 1024 << 6 // for the socket reader, as in the teacher

// start launches the dispatcher goroutine under an errgroup so a fatal
// read error and an explicit Close converge on the same shutdown path
// (spec.md §5's single-reader discipline, supervised per DESIGN.md).
func (c *Connection) start() {
	c.eg, _ = errgroup.WithContext(context.Background())
	c.eg.Go(func() error {
		err := c.dispatchLoop()
		c.fail(err)
		return err
	})
}

// fail tears the connection down exactly once: every outstanding
// pendingReply is completed with ErrDisconnected, the event channel is
// closed (so Recv observes ErrDisconnected once drained), and the
// transport is closed. It must only ever be called from the dispatch
// loop goroutine (via start()): c.events has exactly one sender
// (dispatchLoop's pushEvent), so only that goroutine may close it —
// closing it from elsewhere would race the dispatcher's own send on a
// closed channel and panic.
func (c *Connection) fail(err error) {
	c.failOnce.Do(func() {
		if err == nil {
			err = ErrDisconnected
		}
		c.closeErrMu.Lock()
		c.closeErr = err
		c.closeErrMu.Unlock()

		c.mu.Lock()
		pending := c.pending
		c.pending = nil
		c.mu.Unlock()
		for _, p := range pending {
			p.completeErr(ErrDisconnected)
		}

		c.connClose.Do(func() { c.conn.Close() })
		close(c.events)
		close(c.closed)

		if c.draining.Load() {
			c.logger.WithField("remote_addr", c.remoteAddrString()).Warn("eventsocket: connection closed after disconnect notice")
		} else {
			c.logger.WithField("remote_addr", c.remoteAddrString()).Error("eventsocket: connection closed: " + err.Error())
		}
	})
}

func (c *Connection) remoteAddrString() string {
	if c.conn == nil {
		return ""
	}
	if a := c.conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}

// SendRecv serializes cmd to the transport and suspends until its reply
// arrives, matched FIFO to the order commands were admitted to the write
// lock (spec.md §4.4). The pendingReply is registered before the bytes
// are flushed, in the same critical section, so a racing reply can never
// arrive with no slot to claim it (spec.md §9's enqueue-before-flush
// invariant).
func (c *Connection) SendRecv(ctx context.Context, cmd *Command) (*Event, error) {
	ctx, end := c.tr.startSendRecv(ctx, cmd.line)
	ev, err := c.sendRecv(ctx, cmd)
	end(err)
	return ev, err
}

func (c *Connection) sendRecv(ctx context.Context, cmd *Command) (*Event, error) {
	p := newPendingReply()

	c.mu.Lock()
	select {
	case <-c.closed:
		c.mu.Unlock()
		return nil, ErrDisconnected
	default:
	}
	c.pending = append(c.pending, p)
	_, writeErr := c.conn.Write(cmd.Bytes())
	c.mu.Unlock()

	if writeErr != nil {
		p.cancel()
		// Only close the transport here, not call fail(): this may run on
		// any caller's goroutine, and fail() (which closes c.events) is
		// reserved for the dispatch loop goroutine. Closing the transport
		// unblocks dispatchLoop's Read with an error, and it runs fail()
		// itself when that happens.
		c.connClose.Do(func() { c.conn.Close() })
		return nil, fmt.Errorf("%w: %v", ErrDisconnected, writeErr)
	}

	select {
	case res := <-p.ch:
		if res.err != nil {
			return nil, res.err
		}
		return newEvent(res.raw), nil
	case <-c.closed:
		return nil, ErrDisconnected
	case <-ctx.Done():
		p.cancel()
		return nil, ctx.Err()
	}
}

// Recv pops the next unsolicited event from the event queue, suspending
// if it is empty. Returns ErrDisconnected once the queue is empty and the
// dispatch loop has terminated (spec.md §4.4).
func (c *Connection) Recv(ctx context.Context) (*Event, error) {
	ctx, end := c.tr.startRecv(ctx)
	ev, err := c.recv(ctx)
	end(err)
	return ev, err
}

func (c *Connection) recv(ctx context.Context) (*Event, error) {
	select {
	case ev, ok := <-c.events:
		if !ok {
			return nil, ErrDisconnected
		}
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close terminates the connection. Any SendRecv/Recv blocked at the time
// observe ErrDisconnected. Safe to call more than once.
func (c *Connection) Close() error {
	c.stopOnce.Do(func() { close(c.stopping) })
	c.connClose.Do(func() { c.conn.Close() })
	<-c.closed
	return nil
}

// Err returns the error that terminated the connection, or nil if it is
// still open.
func (c *Connection) Err() error {
	c.closeErrMu.Lock()
	defer c.closeErrMu.Unlock()
	return c.closeErr
}

// RemoteAddr returns the remote address of the underlying transport.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Info returns the CallContext captured during the Outbound handshake,
// or nil for an Inbound connection.
func (c *Connection) Info() *CallContext {
	return c.info
}

// Wait blocks until the dispatch loop has terminated and returns the
// terminal error, surfacing the errgroup-supervised goroutine's result
// through the same path as an explicit Close (DESIGN.md).
func (c *Connection) Wait() error {
	if c.eg != nil {
		_ = c.eg.Wait()
	}
	return c.Err()
}
