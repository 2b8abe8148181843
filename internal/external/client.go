// Package external holds HTTP clients for the third-party services the
// payout pipeline depends on: the fraud scoring service and the payment
// processor. Both are thin JSON-over-HTTP clients; call deadlines come
// from the caller's context.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

const (
	headerAPIKey      = "X-API-Key"
	contentTypeJSON   = "application/json"
	defaultHTTPTimeout = 10 * time.Second
)

// apiClient is the shared transport for the external service clients
type apiClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newAPIClient(baseURL, apiKey string) apiClient {
	return apiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// postJSON sends a JSON body and decodes a JSON response into out.
// Transport failures and 5xx responses map to ErrDependencyUnavailable so
// the payout pipeline can route the request to manual review.
func (c apiClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
