package bundler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Write(append([]byte(r.Header.Get("X-Token")+":"), body...))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
			w.Write([]byte("late"))
		case <-r.Context().Done():
		}
	})
	mux.HandleFunc("/nap", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("rested"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestBundler_MakeCalls(t *testing.T) {
	server := newTestServer(t)
	b := New(500*time.Millisecond, zap.NewNop())

	require.True(t, b.Add(Request{Label: "ok", URL: server.URL + "/ok"}))
	require.True(t, b.Add(Request{Label: "fail", URL: server.URL + "/fail"}))
	require.True(t, b.Add(Request{Label: "slow", URL: server.URL + "/slow"}))

	results := b.MakeCalls(context.Background())
	require.Len(t, results, 3)

	t.Run("success", func(t *testing.T) {
		r := results["ok"]
		assert.True(t, r.Success())
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.JSONEq(t, `{"ok":true}`, string(r.Body))
	})

	t.Run("non-2xx is recorded per label", func(t *testing.T) {
		r := results["fail"]
		assert.False(t, r.Success())
		assert.NoError(t, r.Err)
		assert.Equal(t, http.StatusInternalServerError, r.StatusCode)
	})

	t.Run("timeout is recorded per label", func(t *testing.T) {
		r := results["slow"]
		assert.False(t, r.Success())
		assert.Error(t, r.Err)
	})
}

func TestBundler_DuplicateLabel(t *testing.T) {
	b := New(time.Second, zap.NewNop())

	assert.True(t, b.Add(Request{Label: "CAR", URL: "http://example.invalid/a"}))
	assert.False(t, b.Add(Request{Label: "CAR", URL: "http://example.invalid/b"}))
}

func TestBundler_ResponseUnknownLabel(t *testing.T) {
	b := New(time.Second, zap.NewNop())

	_, ok := b.Response(context.Background(), "missing")
	assert.False(t, ok)
}

func TestBundler_ResponseTriggersCalls(t *testing.T) {
	server := newTestServer(t)
	b := New(time.Second, zap.NewNop())

	b.Add(Request{
		Label:   "echo",
		URL:     server.URL + "/echo",
		Method:  http.MethodPost,
		Body:    []byte("payload"),
		Headers: map[string]string{"X-Token": "secret"},
	})

	r, ok := b.Response(context.Background(), "echo")
	require.True(t, ok)
	assert.True(t, r.Success())
	assert.Equal(t, "secret:payload", string(r.Body))

	again, ok := b.Response(context.Background(), "echo")
	require.True(t, ok)
	assert.Equal(t, r, again)
}

func TestBundler_RunsConcurrently(t *testing.T) {
	server := newTestServer(t)
	b := New(5*time.Second, zap.NewNop())

	for _, label := range []string{"a", "b", "c", "d"} {
		b.Add(Request{Label: label, URL: server.URL + "/nap"})
	}

	start := time.Now()
	results := b.MakeCalls(context.Background())
	elapsed := time.Since(start)

	assert.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Success())
	}
	assert.Less(t, elapsed, 700*time.Millisecond)
}

func TestBundler_ConnectionError(t *testing.T) {
	b := New(time.Second, zap.NewNop())
	b.Add(Request{Label: "down", URL: "http://127.0.0.1:1/nowhere"})

	r, ok := b.Response(context.Background(), "down")
	require.True(t, ok)
	assert.False(t, r.Success())
	assert.Error(t, r.Err)
}

func TestBundler_ResultsAreCopies(t *testing.T) {
	server := newTestServer(t)
	b := New(time.Second, zap.NewNop())
	b.Add(Request{Label: "ok", URL: server.URL + "/ok"})

	first := b.MakeCalls(context.Background())
	delete(first, "ok")

	second := b.MakeCalls(context.Background())
	assert.Contains(t, second, "ok")
}
