package output_test

import (
	"bytes"
	"testing"

	"github.com/lumenlang/lumen/internal/ui/output"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSelection(t *testing.T) {
	t.Run("NO_COLOR forces ascii everywhere", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		assert.Equal(t, termenv.Ascii, output.ColorProfile())
		assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
	})

	t.Run("interactive profile follows the terminal", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")

		// The detected profile depends on the environment, so only check
		// that it lands in the valid range.
		p := output.ColorProfile()
		assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
	})

	t.Run("non-interactive profile is plain ANSI", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")

		assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())
	})
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	out := output.New(&buf)
	require.NotNil(t, out)

	_, err := out.WriteString("interactive")
	require.NoError(t, err)
	assert.Equal(t, "interactive", buf.String())
}

func TestNewWithProfile(t *testing.T) {
	var buf bytes.Buffer

	out := output.NewWithProfile(&buf, output.ColorProfileANSI)
	require.NotNil(t, out)

	_, err := out.WriteString("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", buf.String())
}

func TestNilWriterDefaultsToStderr(t *testing.T) {
	assert.NotNil(t, output.New(nil))
	assert.NotNil(t, output.NewWithProfile(nil, output.ColorProfile))
}
