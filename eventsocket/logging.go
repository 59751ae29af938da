package eventsocket

import "github.com/sirupsen/logrus"

// Logger is the sink the library logs through. The default implementation
// is backed by logrus, matching the rest of the retrieval pack's
// convention (grafana-k6, jeffnash-CLIProxyAPI, prysmaticlabs-prysm);
// callers that want a different sink pass their own via WithLogger.
type Logger interface {
	Warn(args ...interface{})
	Error(args ...interface{})
	WithField(key string, value interface{}) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps an existing *logrus.Logger as a Logger. Passing
// nil uses logrus's standard logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusLogger{entry: logrus.NewEntry(l).WithField("component", "eventsocket")}
}

func (l *logrusLogger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *logrusLogger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func defaultLogger() Logger {
	return NewLogrusLogger(nil)
}
