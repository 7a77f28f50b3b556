package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseValid(t *testing.T) {
	opts, err := Parse("nightly", "release", "2015")
	require.NoError(t, err)
	assert.Equal(t, Options{Channel: Nightly, Mode: Release, Edition: Edition2015}, opts)
}

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	opts, err := Parse(string(d.Channel), string(d.Mode), string(d.Edition))
	require.NoError(t, err)
	assert.Equal(t, d, opts)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name                   string
		channel, mode, edition string
		field                  string
		allowed                []string
	}{
		{"channel", "unstable", "debug", "2018", "version", []string{"stable", "beta", "nightly"}},
		{"empty channel", "", "debug", "2018", "version", []string{"stable", "beta", "nightly"}},
		{"channel case", "Stable", "debug", "2018", "version", []string{"stable", "beta", "nightly"}},
		{"mode", "stable", "fast", "2018", "mode", []string{"debug", "release"}},
		{"edition", "stable", "debug", "2021", "edition", []string{"2015", "2018"}},
		{"channel checked first", "x", "y", "z", "version", []string{"stable", "beta", "nightly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.channel, tt.mode, tt.edition)
			require.Error(t, err)

			var invalid *InvalidOptionError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, tt.allowed, invalid.Allowed)
		})
	}
}

func TestInvalidOptionErrorMessage(t *testing.T) {
	_, err := ParseChannel("unstable")
	assert.EqualError(t, err, "`version` must be one of `stable`, `beta`, or `nightly` (got \"unstable\")")

	_, err = ParseMode("fast")
	assert.EqualError(t, err, "`mode` must be one of `debug` or `release` (got \"fast\")")
}
