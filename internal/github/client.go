// Package github is a small client for the GitHub repository search API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"reposcout/internal/domain"
)

// DefaultBaseURL is the public GitHub REST API
const DefaultBaseURL = "https://api.github.com"

const maxBody = 4 << 20

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("github: %d %s", e.StatusCode, e.Message)
}

// ResponseMessage returns the message field of the error payload
func (e *APIError) ResponseMessage() string {
	return e.Message
}

// Options configure a Client
type Options struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerMinute int // 0 disables rate limiting
	Burst             int
	CacheSize         int           // suggestion cache entries, 0 disables caching
	CacheTTL          time.Duration // suggestion cache lifetime
	SuggestLimit      int
	UserAgent         string
	HTTPClient        *http.Client
}

// Client queries the search API. It is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	token        string
	timeout      time.Duration
	userAgent    string
	suggestLimit int
	http         *http.Client
	limiter      *rate.Limiter
	cache        *expirable.LRU[string, searchResponse]
	group        singleflight.Group
}

// NewClient creates a search client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = 8
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "reposcout"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		baseURL:      base,
		token:        opts.Token,
		timeout:      opts.Timeout,
		userAgent:    opts.UserAgent,
		suggestLimit: opts.SuggestLimit,
		http:         httpClient,
	}
	if opts.RequestsPerMinute > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), burst)
	}
	if opts.CacheSize > 0 {
		if opts.CacheTTL <= 0 {
			opts.CacheTTL = time.Minute
		}
		c.cache = expirable.NewLRU[string, searchResponse](opts.CacheSize, nil, opts.CacheTTL)
	}
	return c, nil
}

// SearchRepositories runs one search query. A keyword-only query leaves
// ordering to the API's best match. Every call reaches the API.
func (c *Client) SearchRepositories(ctx context.Context, q domain.Query) (domain.ResultPage, error) {
	params := url.Values{}
	params.Set("q", q.Keyword)
	if q.Sorted() {
		params.Set("sort", string(q.Sort))
		params.Set("order", string(q.Order))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}

	resp, err := c.search(ctx, params, false)
	if err != nil {
		return domain.ResultPage{}, err
	}
	page := domain.ResultPage{TotalCount: resp.TotalCount, Items: make([]domain.Repository, len(resp.Items))}
	for i, item := range resp.Items {
		page.Items[i] = item.toDomain()
	}
	return page, nil
}

// Suggestions returns the best matching repository names for keyword.
// Answers are cached for the configured TTL.
func (c *Client) Suggestions(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
	params := url.Values{}
	params.Set("q", keyword+" in:name")
	params.Set("per_page", strconv.Itoa(c.suggestLimit))

	resp, err := c.search(ctx, params, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Suggestion, len(resp.Items))
	for i, item := range resp.Items {
		out[i] = domain.Suggestion{
			Text:        item.FullName,
			Description: deref(item.Description),
			Stars:       item.StargazersCount,
		}
	}
	return out, nil
}

// search fetches /search/repositories, sharing identical requests that are
// in flight. With cached set, fresh answers are served from the cache. A
// caller that gives up does not cancel a request other callers may be
// waiting on.
func (c *Client) search(ctx context.Context, params url.Values, cached bool) (searchResponse, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/search/repositories"
	u.RawQuery = params.Encode()
	key := u.String()

	useCache := cached && c.cache != nil
	if useCache {
		if resp, ok := c.cache.Get(key); ok {
			slog.Debug("search cache hit", "url", key)
			return resp, nil
		}
	}

	flight := key
	if useCache {
		flight = "cached:" + key
	}
	ch := c.group.DoChan(flight, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		resp, err := c.fetch(fetchCtx, key)
		if err == nil && useCache {
			c.cache.Add(key, resp)
		}
		return resp, err
	})

	select {
	case <-ctx.Done():
		return searchResponse{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return searchResponse{}, res.Err
		}
		return res.Val.(searchResponse), nil
	}
}

func (c *Client) fetch(ctx context.Context, rawURL string) (searchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return searchResponse{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return searchResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return searchResponse{}, fmt.Errorf("read response: %w", err)
	}
	slog.Debug("search request", "url", rawURL, "status", resp.StatusCode, "elapsed", time.Since(start),
		"rate_remaining", resp.Header.Get("X-RateLimit-Remaining"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return searchResponse{}, decodeError(resp.StatusCode, body)
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return searchResponse{}, fmt.Errorf("parse response: %w", err)
	}
	return out, nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.DocumentationURL = payload.DocumentationURL
	}
	return apiErr
}

// IsRateLimited reports whether err is the API refusing a request for rate
// limit reasons.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErr.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(apiErr.Message), "rate limit")
}
