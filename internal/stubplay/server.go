// Package stubplay is an in-process stand-in for the Rust Playground's
// execute and gist endpoints. It never compiles anything; responses come
// from a pluggable Executor.
package stubplay

import (
	"encoding/json"
	"net/http"
	"rpg/internal/models"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Executor produces the response for an execute request.
type Executor func(req models.ExecuteRequest) models.ExecuteResponse

// EchoExecutor reports success and echoes the code back on stdout.
func EchoExecutor(req models.ExecuteRequest) models.ExecuteResponse {
	return models.ExecuteResponse{
		Success: true,
		Stdout:  req.Code,
		Stderr:  "   Compiling playground (stub, " + string(req.Channel) + ")\n",
	}
}

// Server serves /execute and /meta/gist/ and records every call.
type Server struct {
	Store    *GistStore
	Executor Executor

	// FailStatus, when non-zero, is returned by every endpoint.
	FailStatus int

	logger *zap.Logger

	mutex        sync.Mutex
	executeCalls int
	gistCalls    int
	lastExecute  *models.ExecuteRequest
	lastHeaders  http.Header
}

// New creates a server with an empty store and EchoExecutor.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Store:    NewGistStore(),
		Executor: EchoExecutor,
		logger:   logger,
	}
}

// Handler returns the routing for both endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/execute", s.handleExecute)
	mux.HandleFunc("/meta/gist/", s.handleGist)
	return mux
}

// Calls returns how many execute and gist requests have arrived.
func (s *Server) Calls() (execute, gist int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.executeCalls, s.gistCalls
}

// TotalCalls is the sum of all recorded calls.
func (s *Server) TotalCalls() int {
	e, g := s.Calls()
	return e + g
}

// LastExecute returns the most recent execute payload, if any.
func (s *Server) LastExecute() (models.ExecuteRequest, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.lastExecute == nil {
		return models.ExecuteRequest{}, false
	}
	return *s.lastExecute, true
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastHeaders.Clone()
}

func (s *Server) record(r *http.Request, execute bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if execute {
		s.executeCalls++
	} else {
		s.gistCalls++
	}
	s.lastHeaders = r.Header.Clone()
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	s.record(r, true)

	if s.FailStatus != 0 {
		http.Error(w, http.StatusText(s.FailStatus), s.FailStatus)
		return
	}

	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	s.mutex.Lock()
	s.lastExecute = &req
	s.mutex.Unlock()

	s.logger.Debug("execute",
		zap.String("channel", string(req.Channel)),
		zap.String("mode", string(req.Mode)),
		zap.String("edition", string(req.Edition)),
		zap.Int("code_bytes", len(req.Code)))

	writeJSON(w, s.Executor(req))
}

func (s *Server) handleGist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.record(r, false)
		if s.FailStatus != 0 {
			http.Error(w, http.StatusText(s.FailStatus), s.FailStatus)
			return
		}

		var req models.GistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
			return
		}
		g := s.Store.Create(req.Code)
		s.logger.Debug("gist created", zap.String("id", g.ID))
		writeJSON(w, gistPayload{ID: g.ID, Code: g.Code})

	case http.MethodGet:
		id := strings.TrimPrefix(r.URL.Path, "/meta/gist/")
		g, ok := s.Store.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, gistPayload{ID: g.ID, Code: g.Code})

	default:
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
	}
}

// gistPayload mirrors the playground's gist answer, which also echoes code.
type gistPayload struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
