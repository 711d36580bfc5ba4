package tmdb

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

	"github.com/mmcdole/streamlist/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"

	defaultTimeout = 30 * time.Second
	userAgent      = "StreamList/1.0"
	rateBurst      = 4
)

// ClientConfig configures a Client. Zero values pick defaults.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Language   string
	RateLimit  float64 // requests per second, 0 disables limiting
	HTTPClient *http.Client
}

// Client implements domain.CatalogRepository for the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		language:   language,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), rateBurst)
	}
	return c
}

// HasAPIKey reports whether requests can be issued at all
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// doRequest performs an authenticated GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation is not an outage
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", statusMessage(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}

// statusMessage extracts TMDB's error message from a body, if there is one
func statusMessage(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.StatusMessage
}

// GetCategory returns one page of titles for a category
func (c *Client) GetCategory(ctx context.Context, category domain.Category, page int) ([]domain.Title, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("language", c.language)
	query.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/movie/"+string(category), query)
	if err != nil {
		return nil, err
	}

	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapMovies(resp.Results), nil
}

// IsCancelled reports whether err came from context cancellation rather than the API
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
