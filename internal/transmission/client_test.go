package transmission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAddress {
		t.Fatalf("host = %q, want %q", u.Host, defaultAddress)
	}

	u, err = parseBaseURL("https://example.com:9091/web?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_SessionIDHandshake(t *testing.T) {
	t.Parallel()

	const sessionID = "abc123"
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get(sessionHeader) != sessionID {
			w.Header().Set(sessionHeader, sessionID)
			w.WriteHeader(http.StatusConflict)
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Method != "torrent-get" {
			t.Errorf("method = %q, want torrent-get", req.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"arguments": map[string]any{
				"torrents": []map[string]any{{"id": 1, "name": "Foo"}},
			},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	torrents, err := c.TorrentGet(ctx, []string{"name"}, nil)
	if err != nil {
		t.Fatalf("TorrentGet returned error: %v", err)
	}
	if requests != 2 {
		t.Fatalf("requests = %d, want 2 (handshake plus retry)", requests)
	}
	if len(torrents) != 1 || torrents[0]["name"] != "Foo" {
		t.Fatalf("torrents = %#v, want one named Foo", torrents)
	}

	// The session id sticks, so the next call needs no handshake.
	if _, err := c.TorrentGet(ctx, []string{"name"}, nil); err != nil {
		t.Fatalf("second TorrentGet returned error: %v", err)
	}
	if requests != 3 {
		t.Fatalf("requests = %d, want 3", requests)
	}
}

func TestClient_RequestShapes(t *testing.T) {
	t.Parallel()

	var got []request
	var rawArgs []json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw struct {
			Method    string          `json:"method"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode request: %v", err)
		}
		got = append(got, request{Method: raw.Method})
		rawArgs = append(rawArgs, raw.Arguments)
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "success"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if _, err := c.TorrentGet(ctx, []string{"name", "id"}, []int64{3, 5}); err != nil {
		t.Fatalf("TorrentGet returned error: %v", err)
	}
	if err := c.TorrentStop(ctx, 3); err != nil {
		t.Fatalf("TorrentStop returned error: %v", err)
	}
	if err := c.TorrentRemove(ctx, true, 3); err != nil {
		t.Fatalf("TorrentRemove returned error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("requests = %d, want 3", len(got))
	}
	if got[0].Method != "torrent-get" || got[1].Method != "torrent-stop" || got[2].Method != "torrent-remove" {
		t.Fatalf("methods = %v", got)
	}

	var getArgs struct {
		Fields []string `json:"fields"`
		IDs    []int64  `json:"ids"`
	}
	if err := json.Unmarshal(rawArgs[0], &getArgs); err != nil {
		t.Fatalf("decode torrent-get arguments: %v", err)
	}
	if len(getArgs.Fields) != 2 || getArgs.Fields[0] != "name" {
		t.Fatalf("fields = %v, want [name id]", getArgs.Fields)
	}
	if len(getArgs.IDs) != 2 || getArgs.IDs[0] != 3 {
		t.Fatalf("ids = %v, want [3 5]", getArgs.IDs)
	}

	var removeArgs struct {
		Delete bool `json:"delete-local-data"`
	}
	if err := json.Unmarshal(rawArgs[2], &removeArgs); err != nil {
		t.Fatalf("decode torrent-remove arguments: %v", err)
	}
	if !removeArgs.Delete {
		t.Fatalf("delete-local-data not set")
	}
}

func TestClient_AlwaysRequestsIDField(t *testing.T) {
	t.Parallel()

	var fields []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw struct {
			Arguments struct {
				Fields []string `json:"fields"`
			} `json:"arguments"`
		}
		_ = json.NewDecoder(r.Body).Decode(&raw)
		fields = raw.Arguments.Fields
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "success"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.TorrentGet(context.Background(), []string{"name"}, nil); err != nil {
		t.Fatalf("TorrentGet returned error: %v", err)
	}
	if len(fields) != 2 || fields[0] != "id" || fields[1] != "name" {
		t.Fatalf("fields = %v, want [id name]", fields)
	}
}

func TestClient_ErrorResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "method name not recognized"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SessionStats(context.Background()); err == nil {
		t.Fatal("expected error for non-success result")
	}

	if err := c.TorrentStart(context.Background()); err == nil {
		t.Fatal("expected error for empty id list")
	}
}

func TestClient_BasicAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "success", "arguments": map[string]any{}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "alice", "hunter2")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SessionGet(context.Background()); err != nil {
		t.Fatalf("SessionGet returned error: %v", err)
	}

	bad, err := NewClient(server.URL, "alice", "wrong")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := bad.SessionGet(context.Background()); err == nil {
		t.Fatal("expected authentication error")
	}
}
