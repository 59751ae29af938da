package eventsocket

import "sync/atomic"

// pendingResult is what a pendingReply slot resolves to: either the
// matched RawEvent, or a terminal error (the connection closed before a
// reply arrived).
type pendingResult struct {
	raw *RawEvent
	err error
}

// pendingReply is a one-shot slot associated with an in-flight command,
// matched to its reply in FIFO order by the dispatcher (spec.md §3,
// §4.4). If the caller abandons the SendRecv that owns this slot, cancel
// tombstones it: the slot stays in the queue so FIFO order is preserved,
// but the dispatcher discards the matched RawEvent instead of blocking
// a send nobody will receive (spec.md §5, §9).
type pendingReply struct {
	ch        chan pendingResult
	cancelled atomic.Bool
}

func newPendingReply() *pendingReply {
	return &pendingReply{ch: make(chan pendingResult, 1)}
}

// cancel marks the slot abandoned. Safe to call more than once.
func (p *pendingReply) cancel() {
	p.cancelled.Store(true)
}

// completeOK resolves the slot with a matched reply, unless it has been
// cancelled, in which case the reply is silently discarded.
func (p *pendingReply) completeOK(raw *RawEvent) {
	if p.cancelled.Load() {
		return
	}
	p.ch <- pendingResult{raw: raw}
}

// completeErr resolves the slot with a terminal error, unless cancelled.
func (p *pendingReply) completeErr(err error) {
	if p.cancelled.Load() {
		return
	}
	p.ch <- pendingResult{err: err}
}
