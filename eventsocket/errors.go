package eventsocket

import "errors"

// Sentinel errors returned by the library. Use errors.Is to test for them;
// fatal errors are usually wrapped with additional context via fmt.Errorf.
var (
	// ErrConnect is returned when the initial transport dial fails.
	ErrConnect = errors.New("eventsocket: connect failed")

	// ErrAuthFailed is returned by Dial when the switch rejects the
	// password (Reply-Text does not start with "+OK").
	ErrAuthFailed = errors.New("eventsocket: authentication failed")

	// ErrHandshake is returned by Handshake when the switch's connect
	// reply is missing the Unique-ID header.
	ErrHandshake = errors.New("eventsocket: outbound handshake failed")

	// ErrProtocol marks a fatal framing or ordering violation. The
	// connection is unusable after this error is observed.
	ErrProtocol = errors.New("eventsocket: protocol violation")

	// ErrMalformedBody is returned by a Cast() accessor when the body
	// fails to parse in the requested format. The event remains usable
	// via Bytes()/Header().
	ErrMalformedBody = errors.New("eventsocket: malformed event body")

	// ErrUnsupportedFormat is returned by a Cast() accessor compiled out
	// by a build tag.
	ErrUnsupportedFormat = errors.New("eventsocket: format not compiled in")

	// ErrInvalidCommand is returned by a Command builder when a
	// user-supplied field contains an embedded CR or LF.
	ErrInvalidCommand = errors.New("eventsocket: invalid command")

	// ErrDisconnected is returned by SendRecv/Recv once the connection
	// has terminally closed, and delivered to every outstanding pending
	// reply when that happens.
	ErrDisconnected = errors.New("eventsocket: disconnected")
)
