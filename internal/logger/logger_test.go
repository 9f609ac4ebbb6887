package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
	}{
		{name: "console info", opts: Options{}, wantDebug: false},
		{name: "json debug", opts: Options{JSON: true, Debug: true}, wantDebug: true},
		{name: "named service", opts: Options{Service: "api"}, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := New(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, l.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestNewAppliesZapOptions(t *testing.T) {
	t.Parallel()

	var entries []zapcore.Entry
	l, err := New(Options{Service: "analyze"}, zap.Hooks(func(e zapcore.Entry) error {
		entries = append(entries, e)
		return nil
	}))
	require.NoError(t, err)

	l.Named("bootstrap").Info("analyzer ready")
	l.Debug("dropped at info level")

	require.Len(t, entries, 1)
	assert.Equal(t, "analyzer ready", entries[0].Message)
	assert.Equal(t, "bootstrap", entries[0].LoggerName)
}

func TestForAnalysis(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	id := uuid.New()

	ForAnalysis(zap.New(core), id, "resume.pdf").Info("resume analyzed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, id.String(), fields["analysis_id"])
	assert.Equal(t, "resume.pdf", fields["filename"])
}
