package models

import "rpg/internal/options"

// CrateTypeBinary is the only crate type the client ever requests.
const CrateTypeBinary = "bin"

// ExecuteRequest is the body sent to the playground's execute endpoint
type ExecuteRequest struct {
	Channel   options.Channel `json:"channel"`
	Mode      options.Mode    `json:"mode"`
	Edition   options.Edition `json:"edition"`
	CrateType string          `json:"crateType"`
	Tests     bool            `json:"tests"`
	Code      string          `json:"code"`
	Backtrace bool            `json:"backtrace"`
}

// NewExecuteRequest fills the fixed fields around code and opts.
func NewExecuteRequest(code string, opts options.Options) ExecuteRequest {
	return ExecuteRequest{
		Channel:   opts.Channel,
		Mode:      opts.Mode,
		Edition:   opts.Edition,
		CrateType: CrateTypeBinary,
		Tests:     false,
		Code:      code,
		Backtrace: false,
	}
}

// ExecuteResponse represents the execution result
type ExecuteResponse struct {
	Success bool   `json:"success"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// GistRequest carries the code for a new gist
type GistRequest struct {
	Code string `json:"code"`
}

// GistResponse holds the identifier of a created gist
type GistResponse struct {
	ID string `json:"id"`
}
