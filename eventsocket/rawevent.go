package eventsocket

import "strings"

// header is a single ordered name/value pair as received on the wire.
// Names are kept byte-exact; lookups are case-sensitive per spec.
type header struct {
	name  string
	value string
}

// RawEvent is an ordered collection of header name/value pairs plus an
// optional opaque body. When the headers contain a nonzero Content-Length
// the body's length equals that value exactly.
type RawEvent struct {
	headers []header
	Body    []byte
}

// newRawEvent allocates an empty RawEvent ready for header appends.
func newRawEvent() *RawEvent {
	return &RawEvent{}
}

// add appends a header, preserving first-occurrence order. A repeated
// name is dropped: the first occurrence's value is kept and the rest are
// ignored, per DESIGN.md's Open Question resolution (no concatenation).
func (r *RawEvent) add(name, value string) {
	for i := range r.headers {
		if r.headers[i].name == name {
			return
		}
	}
	r.headers = append(r.headers, header{name: name, value: value})
}

// Header looks up a top-level header by exact (case-sensitive) name.
func (r *RawEvent) Header(name string) (string, bool) {
	for i := range r.headers {
		if r.headers[i].name == name {
			return r.headers[i].value, true
		}
	}
	return "", false
}

// Headers returns the header names in wire order as a copy; callers may range
// over it without risk of mutating the RawEvent.
func (r *RawEvent) Headers() []string {
	out := make([]string, 0, len(r.headers))
	for _, h := range r.headers {
		out = append(out, h.name)
	}
	return out
}

// HeaderMap materializes the headers into a map, collapsing order. Useful
// for logging or forwarding an entire block.
func (r *RawEvent) HeaderMap() map[string]string {
	m := make(map[string]string, len(r.headers))
	for _, h := range r.headers {
		m[h.name] = h.value
	}
	return m
}

// String renders the headers and body for debugging/logging.
func (r *RawEvent) String() string {
	var b strings.Builder
	for _, h := range r.headers {
		b.WriteString(h.name)
		b.WriteString(": ")
		b.WriteString(h.value)
		b.WriteByte('\n')
	}
	if len(r.Body) > 0 {
		b.WriteString("BODY: ")
		b.Write(r.Body)
	}
	return b.String()
}
