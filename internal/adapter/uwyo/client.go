package uwyo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the University of Wyoming sounding CGI endpoint.
const DefaultBaseURL = "https://weather.uwyo.edu/cgi-bin/sounding"

const userAgent = "sounding-archiver/1.0 (+https://github.com/couchcryptid/sounding-archiver)"

// maxBodyBytes bounds a single sounding page. TEXT:LIST pages are tens of KB.
const maxBodyBytes = 8 << 20

// ErrBodyTooLarge is returned when a page exceeds maxBodyBytes.
var ErrBodyTooLarge = errors.New("uwyo: response body too large")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("uwyo: unexpected status %d: %s", e.StatusCode, e.Status)
}

// Client fetches raw sounding pages.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client whose requests give up after timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch issues a single GET for url and returns the response body decoded to
// UTF-8 using the response charset. Pages without a declared charset that are
// not valid UTF-8 are read as Windows-1252.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("fetching sounding", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sounding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxBodyBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}

	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return string(body), nil
}
