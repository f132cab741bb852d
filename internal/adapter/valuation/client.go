package valuation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
)

// Client calls the external valuation service over HTTP. The service receives
// the aggregate per-tier delta of a batch and answers with a status token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new valuation Client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type evaluateRequest struct {
	T1 float64 `json:"T1"`
	T2 float64 `json:"T2"`
	T3 float64 `json:"T3"`
}

type evaluateResponse struct {
	Status string `json:"status"`
}

// Evaluate sends the aggregate delta and returns the raw status token.
// Any transport error, non-2xx response or malformed body is returned as an
// error; the caller decides what a missing verdict means for the batch.
func (c *Client) Evaluate(ctx context.Context, delta domain.AggregateDelta) (string, error) {
	body, err := json.Marshal(evaluateRequest{
		T1: delta.Tier1.InexactFloat64(),
		T2: delta.Tier2.InexactFloat64(),
		T3: delta.Tier3.InexactFloat64(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal valuation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build valuation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call valuation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("valuation service returned %d", resp.StatusCode)
	}

	var parsed evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode valuation response: %w", err)
	}

	return parsed.Status, nil
}
