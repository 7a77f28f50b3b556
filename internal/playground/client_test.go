package playground

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"rpg/internal/models"
	"rpg/internal/options"
	"rpg/internal/stubplay"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newStubClient(t *testing.T) (*Client, *stubplay.Server) {
	t.Helper()
	stub := stubplay.New(nil)
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	return NewClient(cfg, server.Client(), nil), stub
}

func TestExecuteSendsFixedPayload(t *testing.T) {
	client, stub := newStubClient(t)
	stub.Executor = func(models.ExecuteRequest) models.ExecuteResponse {
		return models.ExecuteResponse{Success: true, Stdout: "hi\n"}
	}

	code := "fn main() {\n    println!(\"a&b=c %20\");\n}\n"
	res, err := client.Execute(context.Background(), code, options.Default())
	require.NoError(t, err)
	assert.Equal(t, &models.ExecuteResponse{Success: true, Stdout: "hi\n"}, res)

	got, ok := stub.LastExecute()
	require.True(t, ok)
	want := models.ExecuteRequest{
		Channel:   options.Stable,
		Mode:      options.Debug,
		Edition:   options.Edition2018,
		CrateType: "bin",
		Tests:     false,
		Code:      code,
		Backtrace: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("execute payload mismatch (-want +got):\n%s", diff)
	}

	headers := stub.LastHeaders()
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	_, err = uuid.Parse(headers.Get(RequestIDHeader))
	assert.NoError(t, err, "request id should be a uuid")
}

func TestCreateGist(t *testing.T) {
	client, stub := newStubClient(t)

	id, err := client.CreateGist(context.Background(), "let x = 1;")
	require.NoError(t, err)

	g, ok := stub.Store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "let x = 1;", g.Code)

	execute, gist := stub.Calls()
	assert.Equal(t, 0, execute)
	assert.Equal(t, 1, gist)
}

func TestNetworkErrors(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		client, stub := newStubClient(t)
		stub.FailStatus = http.StatusInternalServerError

		_, err := client.Execute(context.Background(), "x", options.Default())
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, "/execute", netErr.Op)
		assert.Contains(t, err.Error(), "500")
		assert.Equal(t, 1, stub.TotalCalls(), "no retry expected")
	})

	t.Run("undecodable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL}, server.Client(), nil)
		_, err := client.CreateGist(context.Background(), "x")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Contains(t, err.Error(), "failed to parse response JSON")
	})

	t.Run("missing gist id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(Config{BaseURL: server.URL}, server.Client(), nil)
		_, err := client.CreateGist(context.Background(), "x")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := NewClient(Config{BaseURL: url}, nil, nil)
		_, err := client.Execute(context.Background(), "x", options.Default())
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
	})
}

func TestClientLogsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	stub := stubplay.New(nil)
	server := httptest.NewServer(stub.Handler())
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/"}, server.Client(), zap.New(core))
	assert.Equal(t, server.URL, client.BaseURL())

	_, err := client.CreateGist(context.Background(), "x")
	require.NoError(t, err)

	entries := logs.FilterMessage("received response").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, stub.LastHeaders().Get(RequestIDHeader), fields["request_id"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}
