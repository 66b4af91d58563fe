// Package transmission is the bot's gateway to the Transmission daemon. It
// speaks the JSON RPC protocol over HTTP directly: POST one request object,
// re-acquire the X-Transmission-Session-Id on a 409, basic auth throughout.
package transmission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"transmissionbot/internal/metrics"
)

const sessionHeader = "X-Transmission-Session-Id"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	RPCPath  string

	// HTTPClient overrides the default client (10s timeout, otel transport).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// session is the daemon handshake state. A nil session on the client means no
// connection has been established, or the previous connect attempt failed.
type session struct {
	id      string
	version string
}

// Client wraps the single daemon connection. It is driven from one goroutine
// (the bot's update loop) plus the constructor, so it carries no locking.
type Client struct {
	url      string
	username string
	password string
	http     *http.Client
	logger   *slog.Logger
	sess     *session
}

type rpcRequest struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments,omitempty"`
}

type rpcResponse struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// New builds the client and connects immediately. An unreachable daemon or
// rejected credentials fail construction with a *ConnError.
func New(ctx context.Context, cfg Config) (*Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		url:      fmt.Sprintf("http://%s:%d%s", cfg.Host, cfg.Port, cfg.RPCPath),
		username: cfg.Username,
		password: cfg.Password,
		http:     httpClient,
		logger:   logger,
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// connect performs the session handshake: a session-get both obtains the
// session id and verifies the credentials.
func (c *Client) connect(ctx context.Context) error {
	sess := &session{}
	var args struct {
		Version string `json:"version"`
	}
	if err := c.roundTrip(ctx, sess, "session-get", nil, &args); err != nil {
		return &ConnError{Addr: c.url, Err: err}
	}
	sess.version = args.Version
	c.sess = sess
	c.logger.Info("connected to transmission",
		slog.String("addr", c.url),
		slog.String("version", sess.version),
	)
	return nil
}

// ensureSession reconnects only when no session is held. A session that
// exists but has gone stale is not detected here; the next RPC call fails and
// surfaces its own error.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.sess != nil {
		return nil
	}
	return c.connect(ctx)
}

// call runs one RPC against the established session and records metrics.
func (c *Client) call(ctx context.Context, method string, args, out any) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}
	start := time.Now()
	err := c.roundTrip(ctx, c.sess, method, args, out)
	metrics.RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.RPCRequestsTotal.WithLabelValues(method, result).Inc()
	return err
}

func (c *Client) roundTrip(ctx context.Context, sess *session, method string, args, out any) error {
	body, err := json.Marshal(rpcRequest{Method: method, Arguments: args})
	if err != nil {
		return err
	}

	// One retry for the 409 session-id handshake.
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if sess.id != "" {
			req.Header.Set(sessionHeader, sess.id)
		}
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusConflict && attempt == 0 {
			sess.id = resp.Header.Get(sessionHeader)
			io.Copy(io.Discard, resp.Body) //nolint:errcheck
			resp.Body.Close()
			continue
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("authentication rejected (%d)", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		var rpcResp rpcResponse
		if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
			return err
		}
		if rpcResp.Result != "success" {
			return &DaemonError{Method: method, Result: rpcResp.Result}
		}
		if out != nil && len(rpcResp.Arguments) > 0 {
			return json.Unmarshal(rpcResp.Arguments, out)
		}
		return nil
	}
}
