package eventsocket

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
)

// PlainEvent is the Cast() projection of a text/event-plain body: a
// second header block nested inside the outer body, optionally followed
// by its own Content-Length bounded payload (spec.md §4.1).
type PlainEvent struct {
	outer *RawEvent
	inner *RawEvent
}

// Plain decodes the nested header block. It fails with ErrMalformedBody
// if the body isn't well-formed header lines; the outer Event remains
// usable via Bytes()/Header() regardless.
func (c Cast) Plain() (*PlainEvent, error) {
	inner, err := decodeRawEvent(bufio.NewReader(bytes.NewReader(c.ev.raw.Body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return &PlainEvent{outer: c.ev.raw, inner: inner}, nil
}

// Header resolves name in the inner (nested) header block first, falling
// back to the outer headers. Values are URL-decoded on read, per
// spec.md §6 ("Header value URL-encoding … decoded by Event accessors").
func (p *PlainEvent) Header(name string) (string, bool) {
	if v, ok := p.inner.Header(name); ok {
		return urlDecode(v), true
	}
	if v, ok := p.outer.Header(name); ok {
		return urlDecode(v), true
	}
	return "", false
}

// Bytes returns the inner block's own body, if its headers carried a
// Content-Length (e.g. CUSTOM events with a secondary payload).
func (p *PlainEvent) Bytes() []byte {
	return p.inner.Body
}

// Headers returns the nested block's header names, in wire order.
func (p *PlainEvent) Headers() []string {
	return p.inner.Headers()
}

// urlDecode best-effort URL-decodes v; an undecodable value is returned
// unchanged rather than discarded, matching the teacher's
// copyHeaders fallback behavior.
func urlDecode(v string) string {
	d, err := url.QueryUnescape(v)
	if err != nil {
		return v
	}
	return d
}
