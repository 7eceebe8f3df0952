package logging

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestIDSource(t *testing.T) {
	ids := NewIDSource()
	prev := ids.New()
	for i := 0; i < 100; i++ {
		next := ids.New()
		_, err := ulid.Parse(next)
		require.NoError(t, err)
		assert.Greater(t, next, prev)
		prev = next
	}
}
