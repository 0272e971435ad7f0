// Package collab defines the external collaborator capabilities the tools
// compose with: fetching a URL, rendering structured data to text, and
// posting a notification to a third-party REST API. The tools themselves own
// none of this behavior; they only consume these interfaces, so tests can
// substitute fakes and pipelines can swap implementations.
package collab

import (
	"context"
	"time"
)

// FetchResult is the observable outcome of one HTTP fetch. A non-2xx status
// (404 included) is a result, not an error; errors are reserved for
// connection-level failures.
type FetchResult struct {
	Status  int           `json:"status"`
	Body    []byte        `json:"-"`
	Elapsed time.Duration `json:"elapsed"`
}

// Fetcher retrieves a URL with a bounded timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer renders structured data into a text document (Markdown, JSON).
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Notifier posts a message to an external service using a bearer credential
// from the environment and returns the created resource identifier.
type Notifier interface {
	Notify(ctx context.Context, message string) (string, error)
}
