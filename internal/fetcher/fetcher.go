// Package fetcher queries an HTML web search endpoint and extracts the
// result URLs from the returned page.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const (
	// DefaultEndpoint is DuckDuckGo's JavaScript-free results page.
	DefaultEndpoint = "https://html.duckduckgo.com/html/"
	// DefaultSelector matches organic result links on DefaultEndpoint.
	DefaultSelector = "a.result__a"
	// DefaultUserAgent identifies the client to the search endpoint.
	DefaultUserAgent = "Mozilla/5.0 (compatible; hypersearch-go/1.0; +https://github.com/f4ah6o/hypersearch-go)"
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 30 * time.Second

	maxBodySize = 5 << 20
)

// ErrUnexpectedStatus is returned when the endpoint answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected status from search endpoint")

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	Endpoint  string
	Selector  string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches search result pages and returns the linked URLs.
type Client struct {
	endpoint  string
	selector  string
	userAgent string
	client    *http.Client
}

// New creates a Client from opts.
func New(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Selector == "" {
		opts.Selector = DefaultSelector
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		endpoint:  opts.Endpoint,
		selector:  opts.Selector,
		userAgent: opts.UserAgent,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Search returns up to n result URLs for query, in the order the endpoint
// lists them.
func (c *Client) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	base, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid search endpoint scheme: %s. Only http and https are supported", base.Scheme)
	}

	reqURL := *base
	params := reqURL.Query()
	params.Set("q", query)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	log := logrus.WithFields(logrus.Fields{"endpoint": base.Host, "query": query})
	log.Debug("Requesting search results")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	doc, err := parseDocument(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	urls := c.extractResults(doc, &reqURL, n)
	log.WithField("count", len(urls)).Debug("Extracted search results")
	return urls, nil
}

func parseDocument(body []byte, contentType string) (*goquery.Document, error) {
	node, err := html.Parse(strings.NewReader(decodeHTML(body, contentType)))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(node), nil
}

// extractResults collects distinct absolute http(s) URLs from the anchors
// matching the configured selector.
func (c *Client) extractResults(doc *goquery.Document, page *url.URL, n int) []string {
	seen := make(map[string]bool)
	var urls []string

	doc.Find(c.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		target, ok := resolveResultURL(page, href)
		if !ok || seen[target] {
			return true
		}
		seen[target] = true
		urls = append(urls, target)
		return len(urls) < n
	})

	return urls
}

// resolveResultURL turns an anchor href into the URL of the result it points
// to. Relative links are resolved against the results page and redirect
// wrappers of the form /l/?uddg=<target> are unwrapped.
func resolveResultURL(page *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	rel, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := page.ResolveReference(rel)

	if target := resolved.Query().Get("uddg"); target != "" {
		unwrapped, err := url.Parse(target)
		if err != nil {
			return "", false
		}
		resolved = unwrapped
	} else if resolved.Host == page.Host || strings.HasSuffix(page.Host, "."+resolved.Host) {
		// internal navigation (pagination, settings, ads redirect)
		return "", false
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host == "" {
		return "", false
	}
	return resolved.String(), true
}
