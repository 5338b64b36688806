// Package fetch downloads sample JSON over HTTP with retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mcncl/jsontodart/internal/errors"
)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 16 << 20

// Options tunes the retrying client. Zero values select the defaults.
type Options struct {
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
	Logger       *slog.Logger
}

// Client fetches JSON documents.
type Client struct {
	client    *retryablehttp.Client
	userAgent string
}

// NewClient returns a client that retries on connection errors, 5xx responses
// (except 501) and 429 responses. CLI use favours short waits and few retries.
func NewClient(opts Options) *Client {
	if opts.RetryMax <= 0 {
		opts.RetryMax = 3
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 500 * time.Millisecond
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 5 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = retryablehttp.LeveledLogger(opts.Logger.With("component", "fetch"))

	return &Client{
		client:    retryClient,
		userAgent: "jsontodart/" + versioninfo.Short(),
	}
}

// Fetch downloads the document at rawURL and returns it as text.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.NewInputError(fmt.Sprintf("invalid URL '%s': only http and https are supported", rawURL), err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.NewInputError("failed to build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to fetch '%s'", rawURL), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.NewInputError(fmt.Sprintf("fetching '%s' returned HTTP %d", rawURL, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to read response from '%s'", rawURL), err)
	}
	if len(body) > MaxBodyBytes {
		return "", errors.NewInputError(fmt.Sprintf("response from '%s' exceeds %d bytes", rawURL, MaxBodyBytes), nil)
	}
	if len(body) == 0 {
		return "", errors.NewInputError(fmt.Sprintf("response from '%s' is empty", rawURL), errors.ErrEmptyInput)
	}
	return string(body), nil
}
