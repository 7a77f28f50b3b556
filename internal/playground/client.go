// Package playground talks to the Rust Playground's execute and gist
// endpoints and turns their answers into printable results or URLs.
package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"rpg/internal/models"
	"rpg/internal/options"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public playground.
	DefaultBaseURL = "https://play.rust-lang.org"

	executePath = "/execute"
	gistPath    = "/meta/gist/"

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// Config holds the client settings. There is no config file; the CLI
// overrides fields from flags.
type Config struct {
	BaseURL   string
	UserAgent string
}

// DefaultConfig returns a Config pointing at the public playground.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "rpg-cli",
	}
}

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NetworkError covers transport failures, non-success statuses and
// undecodable responses alike.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to get a successful response from %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client is a one-shot, synchronous playground client.
type Client struct {
	cfg    Config
	doer   Doer
	logger *zap.Logger
}

// NewClient builds a client. A nil doer means http.DefaultClient and a nil
// logger means no logging.
func NewClient(cfg Config, doer Doer, logger *zap.Logger) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, doer: doer, logger: logger}
}

// BaseURL returns the playground root used for requests and shared URLs.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Execute compiles and runs code on the playground.
func (c *Client) Execute(ctx context.Context, code string, opts options.Options) (*models.ExecuteResponse, error) {
	var res models.ExecuteResponse
	if err := c.post(ctx, executePath, models.NewExecuteRequest(code, opts), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateGist stores code on the playground and returns the gist id.
func (c *Client) CreateGist(ctx context.Context, code string) (string, error) {
	var res models.GistResponse
	if err := c.post(ctx, gistPath, models.GistRequest{Code: code}, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", &NetworkError{Op: gistPath, Err: fmt.Errorf("response has no gist id")}
	}
	return res.ID, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &NetworkError{Op: path, Err: fmt.Errorf("failed to marshal JSON: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &NetworkError{Op: path, Err: err}
	}
	reqID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	log := c.logger.With(zap.String("request_id", reqID), zap.String("url", req.URL.String()))
	log.Debug("sending request", zap.Int("bytes", len(body)))

	resp, err := c.doer.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return &NetworkError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("received response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &NetworkError{Op: path, Err: fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: path, Err: fmt.Errorf("failed to parse response JSON: %w", err)}
	}
	return nil
}
