package eventsocket

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// decodeRawEvent reads one framed message off r: a header block
// terminated by a blank line, followed by an optional Content-Length
// bounded body. It implements spec.md §4.1/§6's wire framing exactly,
// including tolerance for CRLF line endings on receive.
//
// A malformed header line (missing colon) or an unparseable
// Content-Length is fatal: the returned error wraps ErrProtocol, and the
// caller must treat the connection as unusable.
func decodeRawEvent(r *bufio.Reader) (*RawEvent, error) {
	ev := newRawEvent()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed header line %q", ErrProtocol, line)
		}
		name := line[:idx]
		value := line[idx+1:]
		if strings.HasPrefix(value, " ") {
			value = value[1:]
		}
		ev.add(name, value)
	}

	if v, ok := ev.Header("Content-Length"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid Content-Length %q", ErrProtocol, v)
		}
		if n > 0 {
			body := make([]byte, n)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, err
			}
			ev.Body = body
		}
	}
	return ev, nil
}

// encodeRawEvent renders a RawEvent back to wire form. It is used only by
// tests exercising the framing round-trip invariant (spec.md §8.4);
// production code never re-encodes a received RawEvent.
func encodeRawEvent(ev *RawEvent) []byte {
	var b strings.Builder
	for _, name := range ev.Headers() {
		v, _ := ev.Header(name)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	out := []byte(b.String())
	out = append(out, ev.Body...)
	return out
}
