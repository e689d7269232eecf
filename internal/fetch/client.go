package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client wraps http.Client with the browser-identifying header set career
// sites expect, a per-call timeout, and optional per-host rate limiting.
// Redirects are followed; Response.FinalURL reports where we landed.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
}

type Response struct {
	StatusCode   int
	FinalURL     string
	Body         []byte
	LastModified *time.Time
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func New(timeout time.Duration, limiter *HostLimiter) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Get fetches rawURL. Transport failures and non-2xx statuses come back as
// errors; callers treat them as "this URL yields nothing" per their own
// fallback rules.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	out := &Response{
		StatusCode: res.StatusCode,
		FinalURL:   rawURL,
		Body:       body,
	}
	if res.Request != nil && res.Request.URL != nil {
		out.FinalURL = res.Request.URL.String()
	}
	if lm := res.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			out.LastModified = &t
		}
	}

	if res.StatusCode != http.StatusOK {
		return out, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}
	return out, nil
}

// Doc parses the response body as HTML.
func (r *Response) Doc() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(string(r.Body)))
}
