package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestBuildJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "warn", Format: "json", Writer: &buf})
	l.Info().Msg("hidden")
	l.Warn().Str("component", "dispatch").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"component":"dispatch"`)
}

func TestNamedAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Format: "json", Writer: &buf})
	child := l.With().Str("component", "menu").Logger()
	child.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"menu"`)
	assert.NotNil(t, Named("capture"))
}
