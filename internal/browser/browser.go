// Package browser opens URLs with the host's default URL handler.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ErrNotSupported is returned by openers for OS families with no known
// URL handler.
var ErrNotSupported = errors.New("opening a browser is not supported on this platform")

// LaunchError reports a URL handler that failed to start or exited non-zero.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to open browser with %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// URLOpener opens a URL for the user.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// Runner runs an external command to completion.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command with os/exec and waits for it.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

type commandOpener struct {
	name   string
	args   []string
	run    Runner
	logger *zap.Logger
}

func (o *commandOpener) Open(ctx context.Context, url string) error {
	args := append(append([]string{}, o.args...), url)
	o.logger.Debug("opening browser", zap.String("command", o.name), zap.Strings("args", args))

	if err := o.run(ctx, o.name, args...); err != nil {
		return &LaunchError{Command: strings.Join(append([]string{o.name}, o.args...), " "), Err: err}
	}
	return nil
}

type unsupportedOpener struct {
	goos string
}

func (o unsupportedOpener) Open(context.Context, string) error {
	return fmt.Errorf("%s: %w", o.goos, ErrNotSupported)
}

// ForOS selects the opener for goos. A nil runner means ExecRunner.
func ForOS(goos string, run Runner, logger *zap.Logger) URLOpener {
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch goos {
	case "windows":
		return &commandOpener{name: "rundll32.exe", args: []string{"url.dll,FileProtocolHandler"}, run: run, logger: logger}
	case "darwin":
		return &commandOpener{name: "open", run: run, logger: logger}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return &commandOpener{name: "xdg-open", run: run, logger: logger}
	default:
		return unsupportedOpener{goos: goos}
	}
}

// Default returns the opener for the running platform.
func Default(logger *zap.Logger) URLOpener {
	return ForOS(runtime.GOOS, nil, logger)
}
