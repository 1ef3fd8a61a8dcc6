// Package network provides the HTTP client used for thumbnails and release checks.
//
// Connections present a Chrome TLS fingerprint through uTLS. HTTP/2 is tried
// first; a failed attempt is retried once over HTTP/1.1.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vidclip-cli/vidclip/constant"
	"github.com/vidclip-cli/vidclip/filesystem"
	"github.com/vidclip-cli/vidclip/util"
)

const httpTimeout = 30 * time.Second

// Client performs GET requests with browser-like headers.
type Client struct {
	HTTP *http.Client
}

// Default is shared across the application.
var Default = NewClient()

// NewClient returns a client dialing with the Chrome fingerprint.
func NewClient() *Client {
	return &Client{
		HTTP: &http.Client{
			Timeout: time.Minute,
			Transport: &fallbackTransport{
				primary:  newH2Transport(),
				fallback: newH1Transport(),
			},
		},
	}
}

// Get fetches url and returns the response body. Statuses other than 200 are errors.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// JSON fetches url and decodes the body into target.
func (c *Client) JSON(ctx context.Context, url string, target any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}

// Save fetches url into the file at path, creating parent directories.
func (c *Client) Save(ctx context.Context, url, path string) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return afero.WriteFile(filesystem.API(), path, body, 0o644)
}

// fallbackTransport retries a failed round trip once on a second transport.
// Only bodiless requests are retried.
type fallbackTransport struct {
	primary, fallback http.RoundTripper
}

func (t *fallbackTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.primary.RoundTrip(req)
	if err == nil || req.Body != nil && req.Body != http.NoBody {
		return resp, err
	}

	if req.Context().Err() != nil {
		return nil, err
	}
	return t.fallback.RoundTrip(req.Clone(req.Context()))
}
