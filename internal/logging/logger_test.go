package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{input: "debug", expected: zapcore.DebugLevel},
		{input: "INFO", expected: zapcore.InfoLevel},
		{input: "", expected: zapcore.InfoLevel},
		{input: "warning", expected: zapcore.WarnLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "loud", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)

			if tc.wantErr {
				assert.ErrorContains(t, err, "unknown log level")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug shows verbose", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info hides verbose", level: "info", wantInfo: true},
		{name: "error hides info", level: "error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(tc.level, &buf)
			require.NoError(t, err)

			logger.V(1).Info("verbose detail", "step", 1)
			logger.Info("document rendered", "bytes", 42)
			logger.Error(errors.New("boom"), "render failed")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("verbose detail")))
			assert.Equal(t, tc.wantInfo, bytes.Contains(buf.Bytes(), []byte("document rendered")))
			assert.Contains(t, out, "render failed")
			assert.Contains(t, out, "boom")
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})

	assert.Error(t, err)
}
