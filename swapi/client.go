package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Client represents a SWAPI client
type Client struct {
	baseURL    string
	httpClient *http.Client
	opts       clientOptions
	logger     zerolog.Logger
}

// NewClient creates a new SWAPI client rooted at baseURL
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: SWAPI URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid SWAPI URL %q", ErrInvalidConfig, baseURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// Endpoints are appended to the base, so it must end with a slash
	baseURL = strings.TrimRight(baseURL, "/") + "/"

	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(options, logger),
		opts:       options,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET request and returns the raw body
func (c *Client) doRequest(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	requestURL, err := withQuery(rawURL, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.opts.userAgent != "" {
		req.Header.Set("User-Agent", c.opts.userAgent)
	}

	c.logger.Debug().Str("url", requestURL).Msg("Making SWAPI request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("url", requestURL).
			Msgf("No response from the server. status code: %d", resp.StatusCode)

		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			URL:        requestURL,
			Body:       string(body),
		}
		if apiErr.IsRateLimited() {
			c.logger.Warn().
				Int("retries", c.opts.maxRetries).
				Msg("SWAPI is rate limiting requests, raise swapi.retries or lower scenario.concurrency")
		}

		if !c.opts.lenientStatus {
			return nil, apiErr
		}
	}

	return body, nil
}

func withQuery(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidReference, rawURL, err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// FetchEndpoint GETs a path relative to the base URL. An empty path fetches
// the root. Paths get the trailing slash SWAPI uses for canonical URLs.
func (c *Client) FetchEndpoint(ctx context.Context, path string) (json.RawMessage, error) {
	endpoint := c.baseURL
	if p := strings.Trim(path, "/"); p != "" {
		endpoint += p + "/"
	}

	body, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidResponse, path)
	}
	return json.RawMessage(body), nil
}

// FetchReference GETs an absolute entity URL taken from another entity's payload
func (c *Client) FetchReference(ctx context.Context, ref string) (Entity, error) {
	u, err := url.Parse(ref)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidReference, ref)
	}

	body, err := c.doRequest(ctx, ref, nil)
	if err != nil {
		return nil, err
	}

	var entity Entity
	if err := decode(body, &entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Root fetches the category listing
func (c *Client) Root(ctx context.Context) (Root, error) {
	body, err := c.FetchEndpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get root: %w", err)
	}

	var root Root
	if err := decode(body, &root); err != nil {
		return nil, err
	}
	return root, nil
}

// Page fetches the first page of a category
func (c *Client) Page(ctx context.Context, category string) (*Page, error) {
	body, err := c.FetchEndpoint(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", category, err)
	}

	var page Page
	if err := decode(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllPages fetches every entity of a category by following next links
func (c *Client) AllPages(ctx context.Context, category string) ([]Entity, error) {
	page, err := c.Page(ctx, category)
	if err != nil {
		return nil, err
	}

	all := append([]Entity(nil), page.Results...)
	pageNum := 1

	for page.HasNext() {
		body, err := c.doRequest(ctx, *page.Next, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s page %d: %w", category, pageNum+1, err)
		}

		page = &Page{}
		if err := decode(body, page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		pageNum++

		c.logger.Debug().
			Str("category", category).
			Int("page", pageNum).
			Int("count", len(page.Results)).
			Int("total", len(all)).
			Msg("Retrieved page from SWAPI")
	}

	return all, nil
}

// Search returns every entity of a category matching term
func (c *Client) Search(ctx context.Context, category, term string) ([]Entity, error) {
	params := url.Values{}
	params.Set("search", term)

	body, err := c.doRequest(ctx, c.baseURL+strings.Trim(category, "/")+"/", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", category, err)
	}

	var page Page
	if err := decode(body, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Find returns the first entity of a category matching term. An empty
// search result is reported as ErrNotFound, never as an entity.
func (c *Client) Find(ctx context.Context, category, term string) (Entity, error) {
	results, err := c.Search(ctx, category, term)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		c.logger.Error().
			Str("category", category).
			Msgf("Search gave no result. Entity %q not found.", term)
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, category, term)
	}

	return results[0], nil
}

// TestConnection checks that the root resource answers with categories
func (c *Client) TestConnection(ctx context.Context) error {
	root, err := c.Root(ctx)
	if err != nil {
		return err
	}
	if len(root) == 0 {
		return fmt.Errorf("%w: root lists no categories", ErrInvalidResponse)
	}
	return nil
}
