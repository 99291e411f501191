package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	for _, format := range []string{FormatConsole, FormatJSON, ""} {
		logger, err := New(false, format)
		require.NoError(t, err, format)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), format)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), format)

		verbose, err := New(true, format)
		require.NoError(t, err, format)
		assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel), format)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(false, "xml")
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger, err := New(false, FormatJSON)
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
