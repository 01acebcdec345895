package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sdrelay/internal/domain"
	"sdrelay/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func fakeRunner(output string, err error, calls *[]recordedCommand) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCommand{name: name, args: args})
		return []byte(output), err
	}
}

func TestBuildArgs(t *testing.T) {
	message := domain.NewRelayMessage("general", `say "hi"; rm -rf /`, "FramesNew/0.png")

	args := BuildArgs(message)

	assert.Equal(t, []string{
		"message", "send",
		"--action", "send",
		"--channel", "general",
		"--message", `say "hi"; rm -rf /`,
		"--media", "FramesNew/0.png",
	}, args)
}

func TestBuildArgs_WithoutMedia(t *testing.T) {
	args := BuildArgs(domain.NewRelayMessage("general", "hello", ""))

	assert.NotContains(t, args, "--media")
	assert.Len(t, args, 8)
}

func TestCLIRelay_Send(t *testing.T) {
	var calls []recordedCommand
	relay := NewCLIRelay("/usr/local/bin/openclaw")
	relay.run = fakeRunner("", nil, &calls)

	err := relay.Send(context.Background(), domain.NewRelayMessage("general", "Generated image: cat", "FramesNew/0.png"))

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "/usr/local/bin/openclaw", calls[0].name)
	assert.Equal(t, "general", calls[0].args[5])
}

func TestCLIRelay_SendFailure(t *testing.T) {
	var calls []recordedCommand
	relay := NewCLIRelay("openclaw")
	relay.run = fakeRunner("channel not found\n", errors.New("exit status 2"), &calls)

	err := relay.Send(context.Background(), domain.NewRelayMessage("nowhere", "hello", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRelay)
	assert.Contains(t, err.Error(), "channel not found")
	assert.Contains(t, err.Error(), "exit status 2")
}

func TestCLIRelay_MissingExecutable(t *testing.T) {
	relay := NewCLIRelay("/nonexistent/openclaw-binary")

	err := relay.Send(context.Background(), domain.NewRelayMessage("general", "hello", ""))

	assert.ErrorIs(t, err, domain.ErrRelay)
}

func TestGatewayRelay_Send(t *testing.T) {
	var received domain.RelayMessage
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/message", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		authHeader = r.Header.Get("Authorization")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	relay := NewGatewayRelay(&config.RelayConfig{GatewayURL: server.URL + "/", GatewayToken: "secret"})
	err := relay.Send(context.Background(), domain.NewRelayMessage("general", "Generated image: cat", "FramesNew/0.png"))

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", authHeader)
	assert.Equal(t, domain.NewRelayMessage("general", "Generated image: cat", "FramesNew/0.png"), received)
}

func TestGatewayRelay_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	var raw map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &raw)
	}))
	defer server.Close()

	relay := NewGatewayRelay(&config.RelayConfig{GatewayURL: server.URL})
	err := relay.Send(context.Background(), domain.NewRelayMessage("general", "hello", ""))

	require.NoError(t, err)
	assert.False(t, hasAuth, "トークンがない場合はAuthorizationヘッダーを付けない")
	assert.NotContains(t, raw, "media", "メディアがない場合はmediaフィールドを省略する")
	assert.Equal(t, "send", raw["action"])
}

func TestGatewayRelay_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid token"))
	}))
	defer server.Close()

	relay := NewGatewayRelay(&config.RelayConfig{GatewayURL: server.URL, GatewayToken: "wrong"})
	err := relay.Send(context.Background(), domain.NewRelayMessage("general", "hello", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRelay)
	assert.Contains(t, err.Error(), "invalid token")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type failingBody struct{}

func (failingBody) Read(p []byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error               { return nil }

func TestGatewayRelay_ErrorStatusUnreadableBody(t *testing.T) {
	r := NewGatewayRelay(&config.RelayConfig{GatewayURL: "http://gateway.local"})
	r.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       failingBody{},
			Header:     make(http.Header),
			Request:    req,
		}, nil
	})}

	err := r.Send(context.Background(), domain.NewRelayMessage("general", "hello", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRelay)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "connection reset")
}
