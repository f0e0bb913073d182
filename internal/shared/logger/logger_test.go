package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-fake/internal/shared/contextkeys"
)

func TestNewLoggerWithConfig(t *testing.T) {
	testCases := []struct {
		name   string
		level  string
		format string
	}{
		{name: "debug json", level: "debug", format: "json"},
		{name: "warn text", level: "warn", format: "text"},
		{name: "unknown falls back", level: "nonsense", format: "nonsense"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log := NewLoggerWithConfig(tc.level, tc.format)
			require.NotNil(t, log)
			// Must not panic when logging.
			log.Debugf("debug %s", tc.name)
			log.Infof("info %s", tc.name)
		})
	}
}

func TestWithDerivations(t *testing.T) {
	log := NewTestLogger()

	withFields := log.WithFields(map[string]interface{}{"path": "users/alice"})
	require.NotNil(t, withFields)
	assert.NotSame(t, log, withFields)

	withComponent := log.WithComponent("document_store")
	require.NotNil(t, withComponent)

	ctx := context.WithValue(context.Background(), contextkeys.TransactionIDKey, "tx-1")
	withCtx := log.WithContext(ctx)
	require.NotNil(t, withCtx)
	withCtx.Info("logged with context")
}

func TestNoopLogger(t *testing.T) {
	var log Logger = NoopLogger{}
	log.Debug("ignored")
	log.Errorf("ignored %d", 1)
	assert.Equal(t, log, log.WithComponent("x"))
	assert.Equal(t, log, log.WithContext(context.Background()))
}
