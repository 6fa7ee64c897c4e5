// Package external provides the HTTP adapter for the eligibility oracle.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client calls a remote eligibility service over HTTP. The service answers
// GET {base}/eligible?id=<normalizedID>&subject=<subjectID> with
// {"eligible": bool}.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs an oracle client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// IsEligible consults the remote service. Transport failures and non-2xx
// statuses surface as errors; the policy fails closed on them.
func (c *Client) IsEligible(ctx context.Context, normalizedID string, subjectID int64) (bool, error) {
	q := url.Values{}
	q.Set("id", normalizedID)
	q.Set("subject", strconv.FormatInt(subjectID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/eligible?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("build eligibility request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("eligibility service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("eligibility service returned status %d", resp.StatusCode)
	}

	var body struct {
		Eligible bool `json:"eligible"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode eligibility response: %w", err)
	}
	return body.Eligible, nil
}
