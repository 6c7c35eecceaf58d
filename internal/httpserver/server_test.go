// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-server/internal/observability"
	"github.com/pdiddy/research-server/pkg/types"
)

func testMCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "test"}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "replies pong"},
		func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, any, error) {
			return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: "pong"}}}, nil, nil
		})
	return server
}

func newTestServer(t *testing.T, metricsEnabled bool) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg).RecordToolCall("search_papers", nil)

	cfg := types.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Metrics.Enabled = metricsEnabled
	return New(cfg.Server, cfg.Metrics, testMCPServer(), reg, zerolog.Nop()), reg
}

func TestStatusHandler(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"message": "MCP Research Server is running"}, body)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `research_tool_calls_total{outcome="ok",tool="search_papers"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMCPOverStreamableHTTP(t *testing.T) {
	s, _ := newTestServer(t, true)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + MCPPath}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "ping", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "pong", res.Content[0].(*mcp.TextContent).Text)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, true)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestRunListenError(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Server.Addr = "not-an-address"
	s := New(cfg.Server, cfg.Metrics, testMCPServer(), nil, zerolog.Nop())

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "listen on HTTP address"))
}
