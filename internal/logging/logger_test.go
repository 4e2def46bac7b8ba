package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	require.Equal(t, zerolog.Disabled, ParseLevel("off"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestConfigure_WritesJSONWhenNotTerminal(t *testing.T) {
	defer SetGlobalLogger(zerolog.Nop())

	var buf bytes.Buffer
	// An fd that is never a terminal keeps the JSON encoder in place.
	Configure(&buf, "info", ^uintptr(0))

	Info().Str("section", "Policy").Msg("advanced")
	Debug().Msg("hidden")

	out := buf.String()
	require.Contains(t, out, `"section":"Policy"`)
	require.Contains(t, out, `"message":"advanced"`)
	require.False(t, strings.Contains(out, "hidden"))
}
