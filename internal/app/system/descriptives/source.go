package descriptives

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source yields the raw upstream payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// FileSource reads the payload from a local JSON file, such as the bundled
// example_data/mockresult.json.
type FileSource struct {
	Path string
}

// Fetch reads the file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read descriptives file: %w", err)
	}
	return b, nil
}

// Name identifies the source in stored snapshots.
func (s FileSource) Name() string { return "file:" + s.Path }

// maxPayload bounds the size of an upstream response.
const maxPayload = 32 << 20

// HTTPSource fetches the payload with a GET request.
type HTTPSource struct {
	URL    string
	Token  string
	Client *http.Client
}

// Fetch performs the request. Any non-2xx status is an error.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build descriptives request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch descriptives: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch descriptives: unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read descriptives response: %w", err)
	}
	return b, nil
}

// Name identifies the source in stored snapshots.
func (s HTTPSource) Name() string { return "http:" + s.URL }
