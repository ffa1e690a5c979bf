package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xtding233/forgewheel/internal/logging"
)

func TestNew(t *testing.T) {
	l, err := logging.New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = logging.New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = logging.New("loud")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.False(t, logging.NewNop().Core().Enabled(zapcore.ErrorLevel))
}
