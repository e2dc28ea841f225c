package langserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bnlang/bnls/completion"
	"github.com/bnlang/bnls/errors"
	"github.com/bnlang/bnls/lsp"
)

const testURI = "file:///demo.bnl"

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	svc, err := lsp.NewService(lsp.Options{Completion: completion.DefaultOptions()}, zap.NewNop().Sugar())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := New(svc, opts, zap.NewNop().Sugar())
	ts := httptest.NewServer(srv.Handler(ctx))
	t.Cleanup(ts.Close)
	return srv, ts
}

type rpcClient struct {
	t    *testing.T
	conn *websocket.Conn
	id   int
}

func dial(t *testing.T, ts *httptest.Server, header http.Header) *rpcClient {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err, "Failed to connect WebSocket")
	t.Cleanup(func() { _ = conn.Close() })
	return &rpcClient{t: t, conn: conn}
}

func (c *rpcClient) call(method string, params any) map[string]any {
	c.t.Helper()
	c.id++
	require.NoError(c.t, c.conn.WriteJSON(map[string]any{
		"jsonrpc": "2.0",
		"id":      c.id,
		"method":  method,
		"params":  params,
	}))

	var resp map[string]any
	require.NoError(c.t, c.conn.ReadJSON(&resp))
	require.Equal(c.t, float64(c.id), resp["id"], "response id for %s", method)
	require.Nil(c.t, resp["error"], "error for %s", method)
	return resp
}

func (c *rpcClient) notify(method string, params any) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}))
}

func (c *rpcClient) initialize() map[string]any {
	c.t.Helper()
	resp := c.call("initialize", map[string]any{
		"processId":    nil,
		"clientInfo":   map[string]any{"name": "TestClient", "version": "1.0"},
		"capabilities": map[string]any{},
	})
	c.notify("initialized", map[string]any{})
	return resp
}

func (c *rpcClient) open(uri, text string) {
	c.t.Helper()
	c.notify("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": "bnl",
			"version":    1,
			"text":       text,
		},
	})
}

func pos(line, character int) map[string]any {
	return map[string]any{"line": line, "character": character}
}

func TestLifecycle(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)

	resp := c.initialize()
	result := resp["result"].(map[string]any)
	capabilities := result["capabilities"].(map[string]any)

	assert.NotNil(t, capabilities["hoverProvider"])
	assert.Equal(t, true, capabilities["documentFormattingProvider"])
	completionProvider := capabilities["completionProvider"].(map[string]any)
	assert.Equal(t, []any{".", "_"}, completionProvider["triggerCharacters"])

	serverInfo := result["serverInfo"].(map[string]any)
	assert.Equal(t, ServerName, serverInfo["name"])

	shutdown := c.call("shutdown", nil)
	assert.Nil(t, shutdown["error"])
}

func completionLabels(t *testing.T, resp map[string]any) map[string]map[string]any {
	t.Helper()
	items, ok := resp["result"].([]any)
	require.True(t, ok, "completion result should be a list")
	out := make(map[string]map[string]any, len(items))
	for _, it := range items {
		item := it.(map[string]any)
		out[item["label"].(string)] = item
	}
	return out
}

func TestCompletionOverWebSocket(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)
	c.initialize()

	c.open(testURI, "ধরি মোট = 0;\nগণিত.")
	resp := c.call("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     pos(1, 5),
	})
	items := completionLabels(t, resp)

	abs, ok := items["abs"]
	require.True(t, ok)
	assert.Equal(t, "Math.abs(x: number): number", abs["detail"])
	assert.Equal(t, float64(2), abs["insertTextFormat"], "member insert text is a snippet")
	assert.Equal(t, float64(2), abs["kind"], "method kind")

	alias, ok := items["poromMan"]
	require.True(t, ok)
	assert.Equal(t, "poromMan($0)", alias["insertText"])

	jodi := items["jodi"]
	require.NotNil(t, jodi)
	assert.Equal(t, float64(14), jodi["kind"], "keyword kind")
	assert.Nil(t, jodi["insertTextFormat"])

	assert.Contains(t, items, "মোট")
	assert.NotContains(t, items, "push")
}

func TestDidChangeReplacesDocument(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)
	c.initialize()

	c.open(testURI, "x")
	c.notify("textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": testURI, "version": 2},
		"contentChanges": []any{map[string]any{"text": "[1, 2]."}},
	})

	resp := c.call("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     pos(0, 7),
	})
	items := completionLabels(t, resp)
	assert.Contains(t, items, "push")
}

func TestHoverOverWebSocket(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)
	c.initialize()
	c.open(testURI, "  jodi (x) {}")

	resp := c.call("textDocument/hover", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     pos(0, 3),
	})
	result := resp["result"].(map[string]any)
	contents := result["contents"].(map[string]any)
	assert.Equal(t, "markdown", contents["kind"])
	assert.Equal(t, "**jodi** — aliases: `if`, `যদি`, `jodi`", contents["value"])

	rng := result["range"].(map[string]any)
	assert.Equal(t, map[string]any{"line": float64(0), "character": float64(2)}, rng["start"])
	assert.Equal(t, map[string]any{"line": float64(0), "character": float64(6)}, rng["end"])

	// no hover on non-keywords
	resp = c.call("textDocument/hover", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     pos(0, 8),
	})
	assert.Nil(t, resp["result"])
}

func TestFormattingOverWebSocket(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)
	c.initialize()
	c.open(testURI, "a\r\nb\r\n")

	resp := c.call("textDocument/formatting", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"options":      map[string]any{"tabSize": 4, "insertSpaces": true},
	})
	edits := resp["result"].([]any)
	require.Len(t, edits, 1)
	edit := edits[0].(map[string]any)
	assert.Equal(t, "a\r\nb\r\n", edit["newText"])
}

func TestUnknownDocument(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	c := dial(t, ts, nil)
	c.initialize()

	resp := c.call("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": "file:///missing.bnl"},
		"position":     pos(0, 0),
	})
	assert.Empty(t, resp["result"])
}

func TestSessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t, Options{Transport: TransportWebSocket})
	a := dial(t, ts, nil)
	b := dial(t, ts, nil)
	a.initialize()
	b.initialize()

	a.open(testURI, "console.")
	resp := b.call("textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": testURI},
		"position":     pos(0, 8),
	})
	assert.Empty(t, resp["result"], "documents opened in one session are invisible to another")
}

func TestCheckOrigin(t *testing.T) {
	_, ts := newTestServer(t, Options{
		Transport:      TransportWebSocket,
		AllowedOrigins: []string{"http://localhost"},
	})

	dial(t, ts, http.Header{"Origin": []string{"http://localhost:5173"}})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		origin  string
		allowed string
		want    bool
	}{
		{"http://localhost", "http://localhost", true},
		{"http://localhost:5173", "http://localhost", true},
		{"http://localhost.evil.example", "http://localhost", false},
		{"https://localhost", "http://localhost", false},
		{"vscode-webview://abc123", "vscode-webview://", true},
		{"http://127.0.0.1:8080", "http://127.0.0.1", true},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, originAllowed(tt.origin, tt.allowed))
		})
	}
}

func TestRunUnknownTransport(t *testing.T) {
	srv, _ := newTestServer(t, Options{Transport: "carrier-pigeon"})
	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
