// Package client implements the typed resource client over the gym
// backend's HTTP contract. Every call is single-shot: retry policy belongs
// to the caller, not here.
package client

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

	"gymdesk/console/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client issues requests against the backend, attaching the current
// session's bearer credential. It holds no entity state of its own.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
	logger   *zap.Logger
}

func New(baseURL string, timeout time.Duration, sessions *session.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		logger:   logger,
	}
}

// errorBody is the error envelope the backend returns on failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// do performs one request. authed calls fail fast with ErrNoSession when
// no session is active; a 401 on an authed call means the backend no
// longer honors the token, so the session is cleared (treated as expiry).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var token string
	if authed {
		var ok bool
		token, ok = c.sessions.Token()
		if !ok {
			return ErrNoSession
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrValidation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed to complete",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response for %s %s: %v", ErrNetwork, method, path, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if authed {
			// Token no longer accepted while a session is believed active:
			// session expiry. Clearing forces the gate back to login.
			c.sessions.Clear()
		}
		return fmt.Errorf("%w: %s", ErrAuth, eb.text())
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, eb.text())
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, eb.text())
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, eb.text())
	default:
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, eb.text())
	}
}
