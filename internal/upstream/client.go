// Package upstream is the storefront's client for the platform REST API: the
// book catalog plus the per-user collections (library, wishlist, cart,
// purchase history). It owns retries, rate limiting and error typing; it
// never caches; snapshots live in internal/store.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(baseURL string, rps, maxRetries int) *Client {
	if rps <= 0 {
		rps = 10
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    trimSlash(baseURL),
		userAgent:  "chapterone-storefront/1.0",
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), rps),
		maxRetries: maxRetries,
	}
}

// envelope matches the platform's response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func (c *Client) get(ctx context.Context, op, path, token string, target any) error {
	var lastErr *FetchError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// 250ms, 500ms, 1s...
			backoff := time.Duration(250<<uint(attempt-1)) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &FetchError{Op: op, Err: ctx.Err()}
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return &FetchError{Op: op, Err: err}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return &FetchError{Op: op, Err: err}
		}
		c.decorate(req, token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &FetchError{Op: op, Err: err}
			continue
		}
		fe := decodeInto(op, resp, target)
		if fe == nil {
			return nil
		}
		if !fe.Temporary() {
			return fe
		}
		lastErr = fe
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, op, path, token string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer drain(resp)
	if resp.StatusCode >= 300 {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}
	return nil
}

func (c *Client) decorate(req *http.Request, token string) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeInto consumes the response, unwrapping the platform envelope when
// present and falling back to a bare JSON body when not.
func decodeInto(op string, resp *http.Response, target any) *FetchError {
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

const maxBodyBytes = 8 << 20

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func pageQuery(offset, limit int) string {
	v := url.Values{}
	v.Set("offset", strconv.Itoa(offset))
	v.Set("limit", strconv.Itoa(limit))
	return v.Encode()
}
