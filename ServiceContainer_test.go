package main

import (
	"bytes"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("explicit size", func(t *testing.T) {
		container, err := BuildContainer([]string{"12", "7"}, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, 12, container.Grid.Rows)
		assert.Equal(t, 7, container.Grid.Cols)
		assert.NotNil(t, container.Evaluator)
		assert.NotNil(t, container.WebhookDispatcher)
		assert.NotNil(t, container.REPL)
		assert.NotNil(t, container.Router)
	})

	t.Run("no args", func(t *testing.T) {
		_, err := BuildContainer(nil, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), UsageMessage)
	})

	t.Run("one arg", func(t *testing.T) {
		_, err := BuildContainer([]string{"12"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), UsageMessage)
	})

	t.Run("too many args", func(t *testing.T) {
		_, err := BuildContainer([]string{"12", "7", "3"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), UsageMessage)
	})

	t.Run("non-numeric row count", func(t *testing.T) {
		_, err := BuildContainer([]string{"abc", "7"}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("non-numeric column count", func(t *testing.T) {
		_, err := BuildContainer([]string{"12", "abc"}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("non-positive dimensions", func(t *testing.T) {
		_, err := BuildContainer([]string{"0", "7"}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
