package transmission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultAddress   = "127.0.0.1:9091"
	rpcPath          = "/transmission/rpc"
	sessionHeader    = "X-Transmission-Session-Id"
	defaultUserAgent = "trawl/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to one Transmission daemon.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	user      string
	password  string

	mu      sync.Mutex
	session string
}

// NewClient builds a Client for the given host:port or URL. Credentials
// may be empty when the daemon does not require them.
func NewClient(address, user, password string) (*Client, error) {
	base, err := parseBaseURL(address)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		user:      user,
		password:  password,
	}, nil
}

type request struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments,omitempty"`
}

type response struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments"`
}

// TorrentGet fetches the given fields for the given torrents. A nil ids
// slice means all torrents. The id field is always requested so callers
// can identify the results.
func (c *Client) TorrentGet(ctx context.Context, fields []string, ids []int64) ([]map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	args := map[string]any{"fields": withIDField(fields)}
	if len(ids) > 0 {
		args["ids"] = ids
	}
	var payload struct {
		Torrents []map[string]any `json:"torrents"`
	}
	if err := c.call(ctx, "torrent-get", args, &payload); err != nil {
		return nil, err
	}
	return payload.Torrents, nil
}

// TorrentStart resumes the given torrents.
func (c *Client) TorrentStart(ctx context.Context, ids ...int64) error {
	return c.torrentAction(ctx, "torrent-start", ids)
}

// TorrentStop pauses the given torrents.
func (c *Client) TorrentStop(ctx context.Context, ids ...int64) error {
	return c.torrentAction(ctx, "torrent-stop", ids)
}

// TorrentVerify rechecks the given torrents' data.
func (c *Client) TorrentVerify(ctx context.Context, ids ...int64) error {
	return c.torrentAction(ctx, "torrent-verify", ids)
}

// TorrentRemove removes the given torrents, deleting downloaded data when
// asked to.
func (c *Client) TorrentRemove(ctx context.Context, deleteData bool, ids ...int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return fmt.Errorf("no torrent ids given")
	}
	args := map[string]any{"ids": ids, "delete-local-data": deleteData}
	return c.call(ctx, "torrent-remove", args, nil)
}

func (c *Client) torrentAction(ctx context.Context, method string, ids []int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if len(ids) == 0 {
		return fmt.Errorf("no torrent ids given")
	}
	return c.call(ctx, method, map[string]any{"ids": ids}, nil)
}

// SessionGet fetches the daemon's session settings.
func (c *Client) SessionGet(ctx context.Context) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload map[string]any
	if err := c.call(ctx, "session-get", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SessionSet applies session settings.
func (c *Client) SessionSet(ctx context.Context, args map[string]any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.call(ctx, "session-set", args, nil)
}

// SessionStats fetches transfer totals and counts.
func (c *Client) SessionStats(ctx context.Context) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload map[string]any
	if err := c.call(ctx, "session-stats", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// call posts one RPC request, retrying once when the daemon demands a
// fresh session id.
func (c *Client) call(ctx context.Context, method string, args any, dest any) error {
	body, err := json.Marshal(request{Method: method, Arguments: args})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		c.setSession(resp.Header.Get(sessionHeader))
		_ = resp.Body.Close()
		resp, err = c.post(ctx, body)
		if err != nil {
			return err
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("authentication rejected by daemon")
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("rpc %s returned status %d", method, resp.StatusCode)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Result != "success" {
		return fmt.Errorf("rpc %s failed: %s", method, envelope.Result)
	}
	if dest == nil || len(envelope.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Arguments, dest); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: rpcPath})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if session := c.getSession(); session != "" {
		req.Header.Set(sessionHeader, session)
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func (c *Client) getSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) setSession(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = id
}

func withIDField(fields []string) []string {
	for _, f := range fields {
		if f == "id" {
			return fields
		}
	}
	return append([]string{"id"}, fields...)
}

func parseBaseURL(address string) (*url.URL, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		trimmed = defaultAddress
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", address, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
