package cli

import (
	"context"
	"io"
	"rpg/internal/browser"
	"rpg/internal/options"
	"rpg/internal/playground"
	"rpg/internal/source"

	"go.uber.org/zap"
)

// RunRequest is the input of the run command, straight from flags.
type RunRequest struct {
	FilePath string
	Version  string
	Mode     string
	Edition  string
	Open     bool
}

// ShareRequest is the input of the share command.
type ShareRequest struct {
	FilePath string
	Version  string
	Mode     string
	Edition  string
}

// App holds the collaborators of both commands. Zero fields are filled
// with production defaults when the root command starts.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Doer sends playground requests; nil means http.DefaultClient.
	Doer playground.Doer
	// Opener launches the browser for run --open.
	Opener browser.URLOpener
	Logger *zap.Logger

	Config playground.Config
}

func (a *App) log() *zap.Logger {
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	return a.Logger
}

func (a *App) client() *playground.Client {
	cfg := a.Config
	if cfg.BaseURL == "" {
		cfg.BaseURL = playground.DefaultBaseURL
	}
	return playground.NewClient(cfg, a.Doer, a.log())
}

func (a *App) opener() browser.URLOpener {
	if a.Opener == nil {
		a.Opener = browser.Default(a.log())
	}
	return a.Opener
}

// Run validates, reads and then either executes the code and returns the
// formatted output, or opens the code in the browser and returns its URL.
func (a *App) Run(ctx context.Context, req RunRequest) (string, error) {
	opts, err := options.Parse(req.Version, req.Mode, req.Edition)
	if err != nil {
		return "", err
	}

	code, err := source.Read(req.FilePath)
	if err != nil {
		return "", err
	}

	client := a.client()
	if req.Open {
		url := playground.RunURL(client.BaseURL(), opts, code)
		if err := a.opener().Open(ctx, url); err != nil {
			return "", err
		}
		return url, nil
	}

	res, err := client.Execute(ctx, code, opts)
	if err != nil {
		return "", err
	}
	a.log().Debug("execution finished", zap.Bool("success", res.Success))
	return playground.FormatOutput(res), nil
}

// Share stores the code as a gist and returns the permanent URL.
func (a *App) Share(ctx context.Context, req ShareRequest) (string, error) {
	opts, err := options.Parse(req.Version, req.Mode, req.Edition)
	if err != nil {
		return "", err
	}

	code, err := source.Read(req.FilePath)
	if err != nil {
		return "", err
	}

	client := a.client()
	id, err := client.CreateGist(ctx, code)
	if err != nil {
		return "", err
	}
	return playground.ShareURL(client.BaseURL(), opts, id), nil
}
