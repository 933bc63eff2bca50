package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapMessage(t *testing.T) {
	err := Wrap("model_unavailable", "gemini request failed", errors.New("dial tcp: timeout"))
	require.EqualError(t, err, "gemini request failed: dial tcp: timeout")

	bare := Wrap("quota_exceeded", "daily limit reached", nil)
	require.EqualError(t, bare, "daily limit reached")
}

func TestCodeOf(t *testing.T) {
	inner := Wrap("invalid_input", "crop is required", nil)
	wrapped := fmt.Errorf("handler: %w", inner)

	require.Equal(t, "invalid_input", CodeOf(wrapped))
	require.True(t, IsCode(wrapped, "invalid_input"))
	require.False(t, IsCode(wrapped, "quota_exceeded"))
	require.Equal(t, "", CodeOf(errors.New("plain")))
	require.Equal(t, "", CodeOf(nil))
}
