package logger

import (
	"context"
	"io"
	"os"

	"firestore-fake/internal/shared/contextkeys"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger is the structured logging interface used across the store engines.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	WithContext(ctx context.Context) Logger
	WithComponent(component string) Logger
}

// LogrusLogger implements Logger on top of logrus.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger configured from the FIRESTORE_FAKE_LOG_LEVEL and
// FIRESTORE_FAKE_LOG_FORMAT environment variables.
func NewLogger() Logger {
	return NewLoggerWithConfig(os.Getenv("FIRESTORE_FAKE_LOG_LEVEL"), os.Getenv("FIRESTORE_FAKE_LOG_FORMAT"))
}

// NewLoggerWithConfig creates a logger with an explicit level and format.
// Unknown levels fall back to info, unknown formats to text.
func NewLoggerWithConfig(level, format string) Logger {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}
	l.SetOutput(os.Stdout)

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// NewTestLogger creates a silent logger for use in tests.
func NewTestLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func (l *LogrusLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *LogrusLogger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *LogrusLogger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *LogrusLogger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *LogrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// WithFields adds structured fields to the logger.
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithContext extracts known store context keys into log fields.
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	fields := logrus.Fields{}
	addContextField(ctx, contextkeys.TransactionIDKey, "transaction_id", fields)
	addContextField(ctx, contextkeys.OperationKey, "operation", fields)
	addContextField(ctx, contextkeys.PathKey, "path", fields)
	addContextField(ctx, contextkeys.ComponentKey, "component", fields)
	return &LogrusLogger{entry: l.entry.WithFields(fields)}
}

// WithComponent adds the component name to the logger.
func (l *LogrusLogger) WithComponent(component string) Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}

func addContextField(ctx context.Context, key interface{}, fieldName string, fields logrus.Fields) {
	if val, ok := ctx.Value(key).(string); ok && val != "" {
		fields[fieldName] = val
	}
}

// NoopLogger discards everything. Used where a nil logger would otherwise be
// passed around.
type NoopLogger struct{}

func (NoopLogger) Debug(args ...interface{})                  {}
func (NoopLogger) Info(args ...interface{})                   {}
func (NoopLogger) Warn(args ...interface{})                   {}
func (NoopLogger) Error(args ...interface{})                  {}
func (NoopLogger) Debugf(format string, args ...interface{})  {}
func (NoopLogger) Infof(format string, args ...interface{})   {}
func (NoopLogger) Warnf(format string, args ...interface{})   {}
func (NoopLogger) Errorf(format string, args ...interface{})  {}
func (n NoopLogger) WithFields(map[string]interface{}) Logger { return n }
func (n NoopLogger) WithContext(context.Context) Logger       { return n }
func (n NoopLogger) WithComponent(string) Logger              { return n }
