package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a JSON-RPC client bound to a single endpoint URL.
type Client struct {
	name       string
	url        string
	httpClient *http.Client
	maxRetries int
}

// NewClient builds a client for one endpoint. maxRetries is the number of
// additional attempts after the first; 0 means exactly one attempt per call.
func NewClient(name, url string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		name:       name,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Name returns the display name the client was built with.
func (c *Client) Name() string { return c.name }

// URL returns the endpoint URL.
func (c *Client) URL() string { return c.url }

// Call issues a JSON-RPC request and returns the response and the latency of
// the attempt that produced it. Failed attempts are retried with exponential
// backoff up to maxRetries.
func (c *Client) Call(ctx context.Context, method string, params ...any) (*Response, time.Duration, error) {
	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}
	if req.Params == nil {
		req.Params = []any{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	var lastLatency time.Duration

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, lastLatency, ctx.Err()
			case <-time.After(backoff):
			}
		}

		start := time.Now()
		resp, err := c.doRequest(ctx, body)
		lastLatency = time.Since(start)
		if err != nil {
			lastErr = err
			continue
		}
		return resp, lastLatency, nil
	}

	return nil, lastLatency, fmt.Errorf("%s: %w", c.name, lastErr)
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	return &resp, nil
}
