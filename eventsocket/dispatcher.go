package eventsocket

import (
	"fmt"
)

// dispatchLoop is the single reader goroutine's body: it continuously
// decodes RawEvents off the wire and classifies each as a reply (FIFO
// matched to the oldest pending command) or an unsolicited event (pushed
// to the bounded event channel), per spec.md §4.4. It returns the
// terminal error that ended the loop; the caller (the goroutine started
// by Connection.start) passes it to Connection.fail, which performs all
// cleanup.
func (c *Connection) dispatchLoop() error {
	for {
		raw, err := decodeRawEvent(c.br)
		if err != nil {
			return err
		}
		ev := newEvent(raw)
		if ev.IsReply() {
			if err := c.routeReply(raw); err != nil {
				return err
			}
			continue
		}
		if ev.ContentType() == ContentTypeDisconnectNotice {
			c.draining.Store(true)
		}
		if !c.pushEvent(ev) {
			// Explicit Close() unblocked us; let the caller's fail()
			// path run with a plain disconnect rather than a read error.
			return ErrDisconnected
		}
	}
}

// routeReply dequeues the oldest pendingReply and completes it with raw.
// An empty queue is a protocol violation: the switch is only supposed to
// emit one reply per admitted command, in order (spec.md §4.4, §8.1).
func (c *Connection) routeReply(raw *RawEvent) error {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: reply received with no pending command", ErrProtocol)
	}
	p := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()
	p.completeOK(raw)
	return nil
}

// pushEvent delivers ev to the consumer's event channel, blocking while
// it is full (the backpressure behavior of spec.md §5/§8.5: a slow
// consumer eventually stalls this read loop, which stalls the socket
// read, which backpressures the peer over TCP). Returns false if an
// explicit Close() interrupted the send first.
func (c *Connection) pushEvent(ev *Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.stopping:
		return false
	}
}
