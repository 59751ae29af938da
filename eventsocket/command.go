package eventsocket

import (
	"fmt"
	"strings"
)

// Format names an event subscription/body encoding (spec.md §4.6's
// event_format option and §4.3's event builders share this type so
// Outbound's handshake and Inbound's subscriptions agree on one
// representation instead of bare strings).
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "plain"
	}
}

// Command is a fully-formed ESL request: a command line, optional
// sub-headers, and an optional literal body, ready to be flushed to the
// wire terminated by a blank line (spec.md §4.3).
type Command struct {
	line    string
	headers []header
	body    string
}

// hasEmbeddedNewline reports whether s contains a CR or LF, which would
// let a caller smuggle extra header lines or a premature message
// terminator into the command stream.
func hasEmbeddedNewline(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// checkField rejects s if it embeds a CR/LF, tagging the error with
// which field failed for a useful ErrInvalidCommand message.
func checkField(field, s string) error {
	if hasEmbeddedNewline(s) {
		return fmt.Errorf("%w: %s contains embedded CR/LF", ErrInvalidCommand, field)
	}
	return nil
}

// newLineCommand builds a single-line command with no sub-headers, the
// common case for api/bgapi/event/filter/auth and the literal verbs.
func newLineCommand(line string) *Command {
	return &Command{line: line}
}

// API builds `api <s>`.
func API(s string) (*Command, error) {
	if err := checkField("api argument", s); err != nil {
		return nil, err
	}
	return newLineCommand("api " + s), nil
}

// BGAPI builds `bgapi <s>`.
func BGAPI(s string) (*Command, error) {
	if err := checkField("bgapi argument", s); err != nil {
		return nil, err
	}
	return newLineCommand("bgapi " + s), nil
}

// Events builds `event <format> <classes>`.
func Events(format Format, classes string) (*Command, error) {
	if err := checkField("event classes", classes); err != nil {
		return nil, err
	}
	return newLineCommand(fmt.Sprintf("event %s %s", format, classes)), nil
}

// EventsJSON builds `event json <classes>`.
func EventsJSON(classes string) (*Command, error) { return Events(FormatJSON, classes) }

// EventsPlain builds `event plain <classes>`.
func EventsPlain(classes string) (*Command, error) { return Events(FormatPlain, classes) }

// EventsXML builds `event xml <classes>`.
func EventsXML(classes string) (*Command, error) { return Events(FormatXML, classes) }

// Filter builds `filter <header> <value>`.
func Filter(h, v string) (*Command, error) {
	if err := checkField("filter header", h); err != nil {
		return nil, err
	}
	if err := checkField("filter value", v); err != nil {
		return nil, err
	}
	return newLineCommand(fmt.Sprintf("filter %s %s", h, v)), nil
}

// Auth builds `auth <password>`.
func Auth(password string) (*Command, error) {
	if err := checkField("password", password); err != nil {
		return nil, err
	}
	return newLineCommand("auth " + password), nil
}

// Connect builds the literal `connect` command used to start the
// Outbound handshake.
func Connect() *Command { return newLineCommand("connect") }

// MyEvents builds the literal `myevents` command.
func MyEvents() *Command { return newLineCommand("myevents") }

// MyEventsFormat builds `myevents <format>`, scoping the subscription to
// this call leg while also setting the encoding events are delivered in
// (spec.md §4.6's event_format option).
func MyEventsFormat(format Format) *Command {
	return newLineCommand("myevents " + format.String())
}

// MyEventsUUID builds `myevents <uuid>`, the form used on Inbound
// connections to scope a subscription to one call leg.
func MyEventsUUID(uuid string) (*Command, error) {
	if err := checkField("uuid", uuid); err != nil {
		return nil, err
	}
	return newLineCommand("myevents " + uuid), nil
}

// Exit builds the literal `exit` command.
func Exit() *Command { return newLineCommand("exit") }

// Linger builds the literal `linger` command (Outbound).
func Linger() *Command { return newLineCommand("linger") }

// NoLinger builds the literal `nolinger` command (Outbound).
func NoLinger() *Command { return newLineCommand("nolinger") }

// SendMsg builds a `sendmsg [uuid]` command with sub-headers, the
// general form that backs Execute. uuid may be empty for Outbound
// connections, where it is implied by the call leg the socket belongs to.
func SendMsg(uuid string, headers map[string]string) (*Command, error) {
	line := "sendmsg"
	if uuid != "" {
		if err := checkField("uuid", uuid); err != nil {
			return nil, err
		}
		line += " " + uuid
	}
	cmd := &Command{line: line}
	// Sorted-by-insertion isn't required by the protocol, but a stable
	// order keeps command framing deterministic for tests/logging.
	for _, k := range sortedKeys(headers) {
		v := headers[k]
		if v == "" {
			continue
		}
		if err := checkField("sendmsg header "+k, k); err != nil {
			return nil, err
		}
		if err := checkField("sendmsg value for "+k, v); err != nil {
			return nil, err
		}
		cmd.headers = append(cmd.headers, header{name: k, value: v})
	}
	return cmd, nil
}

// Execute builds the `sendmsg` form of call-command: execute, used to
// run a dialplan application on a call leg. uuid is required on Inbound
// connections and empty on Outbound connections (the switch infers the
// leg from the socket).
func Execute(uuid, app, arg string) (*Command, error) {
	return SendMsg(uuid, map[string]string{
		"call-command":     "execute",
		"execute-app-name": app,
		"execute-app-arg":  arg,
	})
}

// ExecuteLocked is Execute with event-lock set, so the switch waits for
// the application to finish before the channel processes further events.
func ExecuteLocked(uuid, app, arg string) (*Command, error) {
	return SendMsg(uuid, map[string]string{
		"call-command":     "execute",
		"execute-app-name": app,
		"execute-app-arg":  arg,
		"event-lock":       "true",
	})
}

// Bytes renders the command to its final wire form: the command line,
// any sub-headers, a blank line, and (for commands with a literal body)
// the body bytes.
func (c *Command) Bytes() []byte {
	var b strings.Builder
	b.WriteString(c.line)
	b.WriteByte('\n')
	for _, h := range c.headers {
		b.WriteString(h.name)
		b.WriteString(": ")
		b.WriteString(h.value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	out := []byte(b.String())
	if c.body != "" {
		out = append(out, c.body...)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Small fixed set of sendmsg headers; insertion-sort is plenty and
	// avoids pulling in sort for four-or-so keys in the common case.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
