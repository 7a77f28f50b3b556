package options

import (
	"fmt"
	"strings"
)

// Channel is the rustc release track the playground compiles with.
type Channel string

const (
	Stable  Channel = "stable"
	Beta    Channel = "beta"
	Nightly Channel = "nightly"
)

// Mode is the optimization level requested of the playground.
type Mode string

const (
	Debug   Mode = "debug"
	Release Mode = "release"
)

// Edition is the Rust language edition passed through to the playground.
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
)

var (
	channels = []string{string(Stable), string(Beta), string(Nightly)}
	modes    = []string{string(Debug), string(Release)}
	editions = []string{string(Edition2015), string(Edition2018)}
)

// Options is a validated set of playground display and compile options.
type Options struct {
	Channel Channel
	Mode    Mode
	Edition Edition
}

// Default returns the options used when no flag overrides them.
func Default() Options {
	return Options{Channel: Stable, Mode: Debug, Edition: Edition2018}
}

// InvalidOptionError reports an option value outside its allowed set.
type InvalidOptionError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("`%s` must be one of %s (got %q)", e.Field, joinAllowed(e.Allowed), e.Value)
}

// joinAllowed renders {"a","b","c"} as "`a`, `b`, or `c`".
func joinAllowed(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &InvalidOptionError{Field: field, Value: value, Allowed: allowed}
}

// ParseChannel validates a toolchain channel name.
func ParseChannel(s string) (Channel, error) {
	if err := oneOf("version", s, channels); err != nil {
		return "", err
	}
	return Channel(s), nil
}

// ParseMode validates an optimization mode name.
func ParseMode(s string) (Mode, error) {
	if err := oneOf("mode", s, modes); err != nil {
		return "", err
	}
	return Mode(s), nil
}

// ParseEdition validates an edition year.
func ParseEdition(s string) (Edition, error) {
	if err := oneOf("edition", s, editions); err != nil {
		return "", err
	}
	return Edition(s), nil
}

// Parse validates all three options and returns the first violation.
func Parse(channel, mode, edition string) (Options, error) {
	c, err := ParseChannel(channel)
	if err != nil {
		return Options{}, err
	}
	m, err := ParseMode(mode)
	if err != nil {
		return Options{}, err
	}
	e, err := ParseEdition(edition)
	if err != nil {
		return Options{}, err
	}
	return Options{Channel: c, Mode: m, Edition: e}, nil
}
