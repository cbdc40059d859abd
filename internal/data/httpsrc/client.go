// Package httpsrc fetches the lyrics document over HTTP.
package httpsrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lyricsbox/lyricsbox/internal/data"
	apperrors "github.com/lyricsbox/lyricsbox/internal/errors"
)

// maxBody caps the document size read from the server.
const maxBody = 64 << 20

// Client GETs the data file at URL.
type Client struct {
	URL        string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient returns a client for url. timeout of zero leaves the request without a
// deadline; retryInterval paces consecutive attempts (zero disables pacing).
func NewClient(url string, timeout, retryInterval time.Duration) *Client {
	c := &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if retryInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(retryInterval), 1)
	}
	return c
}

// Fetch downloads and decodes the document. Any non-2xx status is a LoadError of kind
// LoadStatus.
func (c *Client) Fetch(ctx context.Context) (*data.Document, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.NewLoadError(apperrors.LoadFetch, c.URL, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, c.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, c.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &apperrors.LoadError{
			Kind:   apperrors.LoadStatus,
			Source: c.URL,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("HTTP %s", resp.Status),
		}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadFetch, c.URL, err)
	}
	doc, err := data.DecodeDocument(body)
	if err != nil {
		return nil, apperrors.NewLoadError(apperrors.LoadParse, c.URL, err)
	}
	return doc, nil
}

// Name returns the URL.
func (c *Client) Name() string {
	return c.URL
}
