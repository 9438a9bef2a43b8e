// Package api is the client of the remote asset API.
//
// Every response uses the envelope {success, message?, <payload key>}. A
// non-2xx status or success=false becomes an *Error carrying the server
// message. Authenticated calls take the bearer token from the session in
// the request context; without one they fail fast with ErrNoToken.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/session"
)

// DefaultBaseURL is the production asset API.
const DefaultBaseURL = "https://asset-manager-backend-xlkf.onrender.com"

const maxResponseBytes = 4 << 20

// Observer receives one sample per completed API call. status is 0 when no
// response was received.
type Observer interface {
	ObserveAPICall(route string, status int, elapsed time.Duration)
}

// Client talks to the asset API.
type Client struct {
	baseURL  string
	http     *http.Client
	log      *zap.Logger
	observer Observer
	now      func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithObserver records call metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithClock overrides the time source used for rows synthesized locally.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method string
	// route is the path template used as the metrics label.
	route  string
	path   string
	body   any
	public bool
}

type envelope struct {
	success *bool
	message string
	fields  map[string]json.RawMessage
}

func (e envelope) has(key string) bool {
	raw, ok := e.fields[key]
	return ok && !isNull(raw)
}

func (c *Client) do(ctx context.Context, req request) (envelope, error) {
	var token string
	if !req.public {
		token = session.Token(ctx)
		if token == "" {
			return envelope{}, ErrNoToken
		}
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode %s %s: %w", req.method, req.route, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return envelope{}, fmt.Errorf("build %s %s: %w", req.method, req.route, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req.route, 0, start)
		return envelope{}, fmt.Errorf("%s %s: %w", req.method, req.route, err)
	}
	defer resp.Body.Close()
	c.observe(req.route, resp.StatusCode, start)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return envelope{}, fmt.Errorf("read %s %s response: %w", req.method, req.route, err)
	}

	env, decodeErr := decodeEnvelope(data)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("asset api request failed",
			zap.String("method", req.method),
			zap.String("route", req.route),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.message),
		)
		return env, &Error{StatusCode: resp.StatusCode, Message: env.message}
	}
	if decodeErr != nil {
		return env, fmt.Errorf("decode %s %s response: %w", req.method, req.route, decodeErr)
	}
	if env.success != nil && !*env.success {
		c.log.Warn("asset api reported failure",
			zap.String("method", req.method),
			zap.String("route", req.route),
			zap.String("message", env.message),
		)
		return env, &Error{StatusCode: resp.StatusCode, Message: env.message}
	}
	return env, nil
}

func (c *Client) observe(route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveAPICall(route, status, time.Since(start))
	}
}

func decodeEnvelope(data []byte) (envelope, error) {
	env := envelope{fields: map[string]json.RawMessage{}}
	if len(bytes.TrimSpace(data)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(data, &env.fields); err != nil {
		return env, err
	}
	if raw, ok := env.fields["success"]; ok {
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			env.success = &b
		}
	}
	if raw, ok := env.fields["message"]; ok {
		_ = json.Unmarshal(raw, &env.message)
	}
	if raw, ok := env.fields["error"]; ok && env.message == "" {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &nested) == nil {
			env.message = nested.Message
		} else {
			_ = json.Unmarshal(raw, &env.message)
		}
	}
	return env, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// field decodes the payload stored under key.
func field[T any](env envelope, key string) (T, error) {
	var out T
	if !env.has(key) {
		return out, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	if err := json.Unmarshal(env.fields[key], &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// list decodes a list payload; a missing key is an empty list.
func list[T any](env envelope, key string) ([]T, error) {
	if !env.has(key) {
		return []T{}, nil
	}
	return field[[]T](env, key)
}

func idPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
