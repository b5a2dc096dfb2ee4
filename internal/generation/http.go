package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Endpoint paths served by the generation API
const (
	SummaryPath = "/api/generate-summary"
	BulletsPath = "/api/generate-bullets"
)

const maxResponseBytes = 1 << 20

// HTTPClient calls a generation API over HTTP
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient returns a client for the API at baseURL
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateSummary posts req to the summary endpoint
func (c *HTTPClient) GenerateSummary(ctx context.Context, req SummaryRequest) (string, error) {
	var resp SummaryResponse
	if err := c.post(ctx, "generate-summary", SummaryPath, req, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// GenerateBullets posts req to the bullets endpoint
func (c *HTTPClient) GenerateBullets(ctx context.Context, req BulletsRequest) ([]string, error) {
	var resp BulletsResponse
	if err := c.post(ctx, "generate-bullets", BulletsPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Bullets == nil {
		return nil, &CollaboratorError{Operation: "generate-bullets", Message: "response has no bullets field"}
	}
	return resp.Bullets, nil
}

func (c *HTTPClient) post(ctx context.Context, operation, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &CollaboratorError{Operation: operation, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &CollaboratorError{Operation: operation, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &CollaboratorError{Operation: operation, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &CollaboratorError{Operation: operation, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return &CollaboratorError{Operation: operation, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &CollaboratorError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response body (%d bytes)", len(data)),
			Cause:      err,
		}
	}
	return nil
}
