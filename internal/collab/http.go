package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultFetchTimeout bounds a fetch when the caller does not choose one.
const DefaultFetchTimeout = 30 * time.Second

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a Fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements Fetcher. Connection failures and timeouts are errors;
// any HTTP status, 404 included, is a successful fetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &FetchResult{
		Status:  resp.StatusCode,
		Body:    body,
		Elapsed: time.Since(start),
	}, nil
}

// RESTNotifier implements Notifier against a JSON REST endpoint that accepts
// {"message": ...} and answers {"id": ...}. The bearer credential is read
// from the environment at call time, never stored.
type RESTNotifier struct {
	endpoint string
	tokenEnv string
	client   *http.Client
}

// NewRESTNotifier creates a Notifier posting to endpoint, authenticating with
// the token found in the tokenEnv environment variable.
func NewRESTNotifier(endpoint, tokenEnv string, timeout time.Duration) *RESTNotifier {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &RESTNotifier{
		endpoint: endpoint,
		tokenEnv: tokenEnv,
		client:   &http.Client{Timeout: timeout},
	}
}

// Notify implements Notifier.
func (n *RESTNotifier) Notify(ctx context.Context, message string) (string, error) {
	token := os.Getenv(n.tokenEnv)
	if token == "" {
		return "", fmt.Errorf("credential %s is not set", n.tokenEnv)
	}

	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("notification failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("response carried no resource id")
	}
	return created.ID, nil
}
