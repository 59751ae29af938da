package eventsocket

// dialOptions holds the tunables applied to a Dial'd (Inbound)
// connection. A plain functional-options struct is used rather than a
// config-file library (viper, envconfig), since the options are only a
// half-dozen booleans/enums.
type dialOptions struct {
	eventBuffer int
	logger      Logger
}

func defaultDialOptions() dialOptions {
	return dialOptions{eventBuffer: defaultEventBuffer}
}

// DialOption configures a Dial call.
type DialOption func(*dialOptions)

// WithEventBuffer overrides the event channel's capacity (spec.md §5's
// bounded event queue). The default matches the teacher's eventsBuffer.
func WithEventBuffer(n int) DialOption {
	return func(o *dialOptions) { o.eventBuffer = n }
}

// WithLogger swaps the default logrus-backed sink for a caller-supplied
// one (spec.md §6's log feature gate).
func WithLogger(l Logger) DialOption {
	return func(o *dialOptions) { o.logger = l }
}

// Config configures an Outbound handshake (spec.md §4.6).
type Config struct {
	// Linger requests the switch keep the socket open after hangup, so
	// hangup-related events remain deliverable.
	Linger bool

	// SubscribeMyEvents issues `myevents` during the handshake, scoping
	// the event stream to this call leg.
	SubscribeMyEvents bool

	// AsyncMode controls whether linger/myevents are issued before or
	// after the switch is placed in async execution mode. When true,
	// the switch is switched to async mode first.
	AsyncMode bool

	// EventFormat is the format requested for subscriptions issued by
	// the handshake.
	EventFormat Format

	// EventBuffer overrides the event channel's capacity for this call
	// leg. Zero uses the library default.
	EventBuffer int

	// Logger overrides the default logrus-backed sink for this
	// connection.
	Logger Logger
}
