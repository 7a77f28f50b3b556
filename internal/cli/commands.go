// Package cli wires the run and share commands onto cobra.
package cli

import (
	"errors"
	"fmt"
	"io"
	"rpg/internal/options"
	"rpg/internal/playground"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errNoSubcommand = errors.New("subcommand must be `run` or `share`")

// optionFlags are shared by run and share.
type optionFlags struct {
	filename string
	version  string
	mode     string
	edition  string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	d := options.Default()
	cmd.Flags().StringVarP(&f.filename, "filename", "f", "", "file containing the code (alternative to the positional argument)")
	cmd.Flags().StringVarP(&f.version, "version", "v", string(d.Channel), "rustc version: stable, beta, or nightly")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(d.Mode), "optimization level: debug or release")
	cmd.Flags().StringVarP(&f.edition, "edition", "e", string(d.Edition), "edition: 2015 or 2018")
}

// file picks the positional argument over --filename and logs leftovers.
func (f *optionFlags) file(app *App, args []string) (string, error) {
	path := f.filename
	rest := args
	if path == "" && len(args) > 0 {
		path, rest = args[0], args[1:]
	}
	if len(rest) > 0 {
		app.log().Warn("unused arguments left", zap.Strings("args", rest))
	}
	if path == "" {
		return "", errors.New("a file name must be given")
	}
	return path, nil
}

// NewRootCmd builds the rpg command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	var (
		verbose bool
		baseURL string
	)

	root := &cobra.Command{
		Use:   "rpg",
		Short: "rpg - CLI tool for the Rust Playground",
		Long: `rpg sends a local Rust file to the Rust Playground.

  rpg run <file>     run the snippet and print its output,
                     or open it in your default browser with --open
  rpg share <file>   create a permanent playground URL`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("playground-url") || app.Config.BaseURL == "" {
				app.Config.BaseURL = baseURL
			}
			if app.Config.UserAgent == "" {
				app.Config.UserAgent = playground.DefaultConfig().UserAgent
			}
			if app.Logger != nil {
				return nil
			}

			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoSubcommand
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log requests and responses to stderr")
	root.PersistentFlags().StringVar(&baseURL, "playground-url", playground.DefaultBaseURL, "playground base URL")
	_ = root.PersistentFlags().MarkHidden("playground-url")

	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	root.AddCommand(newRunCmd(app), newShareCmd(app))
	return root
}

func newRunCmd(app *App) *cobra.Command {
	var (
		flags optionFlags
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a snippet on the playground",
		Long: `Runs the snippet on the playground and prints stderr followed by stdout.
With --open, the code is embedded in a playground URL and opened in your
default browser instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.file(app, args)
			if err != nil {
				return commandError(cmd, err)
			}

			result, err := app.Run(cmd.Context(), RunRequest{
				FilePath: path,
				Version:  flags.version,
				Mode:     flags.mode,
				Edition:  flags.edition,
				Open:     open,
			})
			if err != nil {
				return commandError(cmd, err)
			}
			if !open {
				fmt.Fprint(app.Stdout, result)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&open, "open", false, "open your default browser with the code")
	return cmd
}

func newShareCmd(app *App) *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Generate a permanent playground URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := flags.file(app, args)
			if err != nil {
				return commandError(cmd, err)
			}

			url, err := app.Share(cmd.Context(), ShareRequest{
				FilePath: path,
				Version:  flags.version,
				Mode:     flags.mode,
				Edition:  flags.edition,
			})
			if err != nil {
				return commandError(cmd, err)
			}
			fmt.Fprintf(app.Stdout, "Share URL: %s\n", url)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func commandError(cmd *cobra.Command, err error) error {
	return fmt.Errorf("failed to execute `%s` command: %w", cmd.Name(), err)
}

// Main runs rpg with args and returns the process exit status.
func Main(args []string, stdout, stderr io.Writer) int {
	return Execute(&App{Stdout: stdout, Stderr: stderr}, args)
}

// Execute runs the command tree for app and reports any failure on
// app.Stderr as a single line.
func Execute(app *App, args []string) int {
	if args == nil {
		args = []string{}
	}
	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(app.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
