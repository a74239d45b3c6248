package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("usable before Initialize", func(t *testing.T) {
		require.NotNil(t, Logger)
		// Must not panic
		Infow("message before init", "key", "value")
		Errorw("error before init")
	})

	t.Run("initialize console output", func(t *testing.T) {
		err := Initialize(false)
		require.NoError(t, err)
		assert.False(t, JSONOutput)
		Infow("console logger ready", "mode", "console")
	})

	t.Run("initialize json output", func(t *testing.T) {
		err := Initialize(true)
		require.NoError(t, err)
		assert.True(t, JSONOutput)
		Infow("json logger ready", "mode", "json")
	})
}
