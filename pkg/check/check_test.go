package check

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("should compare values deeply", func(t *testing.T) {
		require.NoError(t, Equal([]int{1, 2}, []int{1, 2}))
		require.Error(t, Equal(1, 2))
		require.NoError(t, NotEqual(1, 2))
		require.Error(t, NotEqual("a", "a"))
	})

	t.Run("should format condition failures", func(t *testing.T) {
		require.NoError(t, True(true, "unused"))

		err := True(false, "expected %d items", 3)
		require.Error(t, err)
		require.Equal(t, "expected 3 items", err.Error())
	})

	t.Run("should treat typed nils as nil", func(t *testing.T) {
		var p *int
		require.NoError(t, Nil(p))
		require.NoError(t, Nil(nil))
		require.Error(t, Nil(5))
		require.Error(t, NotNil(p))
		require.NoError(t, NotNil(5))
	})

	t.Run("should check substrings", func(t *testing.T) {
		require.NoError(t, Contains("hello world", "world"))
		require.Error(t, Contains("hello", "bye"))
	})
}
