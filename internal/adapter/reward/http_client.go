package reward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
)

// RewardPath is the point API endpoint crediting a user.
const RewardPath = "/api/v1/points/reward"

// HTTPClient calls the point API over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ port.RewardClient = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the point API at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Reward posts cmd. The idempotency key is also sent as a header so the
// point API can reject replays.
func (c *HTTPClient) Reward(ctx context.Context, cmd domain.RewardCommand) error {
	if c.baseURL == "" {
		return fmt.Errorf("point service base URL is not configured")
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal reward command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RewardPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", cmd.IdempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call point service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("point service returned error status %d", resp.StatusCode)
	}
	return nil
}
