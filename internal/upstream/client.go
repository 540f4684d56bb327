package upstream

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

	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

// Observer receives timing for completed upstream calls.
type Observer interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Config configures the academy API client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Logger   *zap.Logger
	Observer Observer
}

// Client is a typed HTTP client for the academy REST API. All persistence and
// business authority live upstream; the gateway only relays requests with the
// caller's bearer token attached.
type Client struct {
	baseURL  string
	httpc    *http.Client
	logger   *zap.Logger
	observer Observer
}

// New builds a client. Timeout defaults to 30s; no retries are performed at
// this layer.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		httpc:    &http.Client{Timeout: cfg.Timeout},
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

// do performs one request and decodes a JSON response into dest (when dest is
// non-nil). Error responses are normalised into typed gateway errors carrying
// the server-supplied message when one is present.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, dest interface{}) error {
	raw, _, err := c.doRaw(ctx, method, path, token, query, body)
	if err != nil {
		return err
	}
	if dest == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected academy API response")
	}
	return nil
}

// doRaw performs one request and returns the raw body plus content type.
// Used directly by the report download path, which relays a CSV blob.
func (c *Client) doRaw(ctx context.Context, method, path, token string, query url.Values, body interface{}) ([]byte, string, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(method, path, resp.StatusCode, duration)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	c.logger.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration))

	if resp.StatusCode >= 400 {
		return nil, "", c.decodeError(resp.StatusCode, raw)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

// decodeError surfaces the server-supplied message when present, else the
// generic fallback.
func (c *Client) decodeError(status int, raw []byte) error {
	message := ""
	var payload struct {
		Message string `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		message = payload.Message
		if message == "" && len(payload.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
				message = nested.Message
			} else {
				var plain string
				if err := json.Unmarshal(payload.Error, &plain); err == nil {
					message = plain
				}
			}
		}
	}
	if message == "" {
		message = appErrors.ErrUpstream.Message
	}

	code := appErrors.ErrUpstream.Code
	switch status {
	case http.StatusUnauthorized:
		code = appErrors.ErrUnauthorized.Code
	case http.StatusForbidden:
		code = appErrors.ErrForbidden.Code
	case http.StatusNotFound:
		code = appErrors.ErrNotFound.Code
	case http.StatusConflict:
		code = appErrors.ErrConflict.Code
	case http.StatusBadRequest:
		code = appErrors.ErrValidation.Code
	}
	return appErrors.New(code, status, message)
}

func pathf(format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return fmt.Sprintf(format, escaped...)
}
