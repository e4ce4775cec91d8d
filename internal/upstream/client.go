// Package upstream is the gateway's client for the myNGO REST
// API. It owns the three cross-cutting behaviors every call
// shares: attaching the session's bearer token, capturing rotated
// tokens from the response header before the caller sees the
// response, and the global 401 path that invalidates the session.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// RotatedTokenHeader is the response header the upstream uses to
// hand out a replacement access token mid-session.
const RotatedTokenHeader = "X-New-Access-Token"

// TokenSource is what the client needs from the session store:
// read the current token, persist a rotated one, and invalidate
// on 401. Satisfied by *session.Store.
type TokenSource interface {
	Token(ctx context.Context, sid string) string
	UpdateToken(ctx context.Context, sid, token string)
	Clear(ctx context.Context, sid string)
}

// WarmCache serves pre-fetched GET responses. Take pops the parked
// body for a path, reporting whether one existed. Satisfied by
// *prefetch.Warmer.
type WarmCache interface {
	Take(ctx context.Context, sid, path string) ([]byte, bool)
}

// Client issues JSON requests against the upstream API. Timeout
// and retry count are fixed at construction and applied uniformly;
// there are no per-request overrides, no backoff and no circuit
// breaking.
type Client struct {
	baseURL  string
	http     *http.Client
	retries  int
	sessions TokenSource
	warm     WarmCache
}

// SetWarmCache installs the prefetch store consulted on GETs. Set
// once at bootstrap, after the warmer is built around this client.
func (c *Client) SetWarmCache(w WarmCache) { c.warm = w }

// New builds a Client. retries counts additional attempts after
// the first; both knobs come from config.
func New(baseURL string, timeout time.Duration, retries int, sessions TokenSource) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		retries:  retries,
		sessions: sessions,
	}
}

// Get issues a GET and decodes the 2xx body into out (ignored when
// out is nil).
func (c *Client) Get(ctx context.Context, sid, path string, out any) error {
	return c.do(ctx, sid, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, sid, path string, body, out any) error {
	return c.do(ctx, sid, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, sid, path string, body, out any) error {
	return c.do(ctx, sid, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, sid, path string, out any) error {
	return c.do(ctx, sid, http.MethodDelete, path, nil, out)
}

// RefreshToken asks the upstream for a fresh access token. The
// rotated token arrives through the usual header sniff (or an
// access_token field in the body) and is persisted before return.
func (c *Client) RefreshToken(ctx context.Context, sid string) error {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, sid, http.MethodPost, "/auth/refresh-token", nil, &body); err != nil {
		return err
	}
	if body.AccessToken != "" {
		c.sessions.UpdateToken(ctx, sid, body.AccessToken)
	}
	return nil
}

// PostMultipart forwards a multipart body (avatar upload) as-is.
// Multipart streams are not replayable, so this path never
// retries.
func (c *Client) PostMultipart(ctx context.Context, sid, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(ctx, sid, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	return c.finish(ctx, sid, resp, out)
}

func (c *Client) authorize(ctx context.Context, sid string, req *http.Request) {
	// No token means the request goes out unauthenticated; the
	// upstream decides whether that is acceptable for the path.
	if tok := c.sessions.Token(ctx, sid); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) do(ctx context.Context, sid, method, path string, body, out any) error {
	// A warmed copy short-circuits the round trip. Warmed bodies are
	// single-use and short-lived, so skipping the rotation and 401
	// side channels here is safe; the next real call runs them.
	if method == http.MethodGet && c.warm != nil && out != nil {
		if raw, ok := c.warm.Take(ctx, sid, path); ok {
			if err := json.Unmarshal(raw, out); err == nil {
				return nil
			}
		}
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		c.authorize(ctx, sid, req)

		resp, lastErr = c.http.Do(req)
		if lastErr != nil {
			continue // transport failure, retry uniformly
		}
		if resp.StatusCode >= 500 && attempt < c.retries {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}
		break
	}
	if lastErr != nil {
		return lastErr
	}
	return c.finish(ctx, sid, resp, out)
}

// finish applies the rotation side channel, maps failures and
// decodes success bodies. Token rotation is persisted before the
// response is handed to the caller so the next outgoing request,
// whoever makes it, already carries the new token.
func (c *Client) finish(ctx context.Context, sid string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	if rotated := resp.Header.Get(RotatedTokenHeader); rotated != "" {
		c.sessions.UpdateToken(ctx, sid, rotated)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Global side effect: any call's 401 ends the session.
		// Clear is idempotent, so concurrent 401s are harmless.
		c.sessions.Clear(ctx, sid)
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &APIError{Status: resp.StatusCode, Data: data}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &APIError{Status: resp.StatusCode, Data: data}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
