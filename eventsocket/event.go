package eventsocket

import "strings"

// Content-Type values the dispatcher and Event recognize (spec.md §3).
const (
	ContentTypeCommandReply     = "command/reply"
	ContentTypeAPIResponse      = "api/response"
	ContentTypeEventPlain       = "text/event-plain"
	ContentTypeEventJSON        = "text/event-json"
	ContentTypeEventXML         = "text/event-xml"
	ContentTypeDisconnectNotice = "text/disconnect-notice"
	ContentTypeAuthRequest      = "auth/request"
)

// Event is a tagged, read-only view over a RawEvent. Format-specific
// accessors live behind Cast() so that parsing only happens when a
// caller actually asks for a format (spec.md §4.2's "zero-copy
// projection … on demand").
type Event struct {
	raw *RawEvent
}

// newEvent wraps a decoded RawEvent. raw must not be nil.
func newEvent(raw *RawEvent) *Event {
	return &Event{raw: raw}
}

// ContentType returns the Content-Type header, or "" if absent.
func (e *Event) ContentType() string {
	v, _ := e.raw.Header("Content-Type")
	return v
}

// IsJSON reports whether this is an unsolicited text/event-json event.
func (e *Event) IsJSON() bool { return e.ContentType() == ContentTypeEventJSON }

// IsPlain reports whether this is an unsolicited text/event-plain event.
func (e *Event) IsPlain() bool { return e.ContentType() == ContentTypeEventPlain }

// IsXML reports whether this is an unsolicited text/event-xml event.
func (e *Event) IsXML() bool { return e.ContentType() == ContentTypeEventXML }

// IsReply reports whether this message is a command reply rather than an
// unsolicited event (used by the dispatcher to classify; exported since
// it is also useful to callers inspecting raw traffic in tests).
func (e *Event) IsReply() bool {
	switch e.ContentType() {
	case ContentTypeCommandReply, ContentTypeAPIResponse:
		return true
	default:
		return false
	}
}

// Header looks up a top-level header by exact name.
func (e *Event) Header(name string) (string, bool) {
	return e.raw.Header(name)
}

// HeaderMap returns all top-level headers, collapsing wire order.
func (e *Event) HeaderMap() map[string]string {
	return e.raw.HeaderMap()
}

// Bytes returns the body verbatim.
func (e *Event) Bytes() []byte {
	return e.raw.Body
}

// Raw exposes the underlying RawEvent, for callers that need the wire
// representation directly (e.g. re-logging, or tests).
func (e *Event) Raw() *RawEvent {
	return e.raw
}

// ReplyOK reports whether a command/reply or api/response indicates
// success, i.e. its Reply-Text (or, for api/response, its body) begins
// with "+OK". Returns false for any event that isn't a reply.
func (e *Event) ReplyOK() bool {
	if !e.IsReply() {
		return false
	}
	if rt, ok := e.Header("Reply-Text"); ok {
		return strings.HasPrefix(rt, "+OK")
	}
	return strings.HasPrefix(string(e.raw.Body), "+OK")
}

// String renders the event for debugging/logging, analogous to the
// teacher's PrettyPrint but returning a string instead of printing.
func (e *Event) String() string {
	return e.raw.String()
}

// Cast returns a projection helper that decodes the body on demand in a
// specific format. See Cast.JSON, Cast.Plain, Cast.XML.
func (e *Event) Cast() Cast {
	return Cast{ev: e}
}

// Cast is a zero-copy format projection over an Event's body. Adding a
// format means adding an accessor here plus, if it classifies events
// (IsX), a content-type arm above.
type Cast struct {
	ev *Event
}
