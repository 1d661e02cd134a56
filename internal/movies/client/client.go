package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/movies/types"
	"github.com/hellodash/dashboard-backend/internal/pkg/apikey"
)

const (
	searchEndpoint = "/search/movie"
	configEndpoint = "/configuration"

	providerName = "tmdb"

	defaultTimeout    = 10 * time.Second
	defaultPosterSize = "w500"
)

// Client is a single-credential TMDB wrapper. Its only cross-call state is
// the image base URL cached from the provider's configuration endpoint.
type Client struct {
	apiHost    string
	apiKey     string
	posterSize string
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.Mutex
	imageBase string
}

// New creates a TMDB client. The API key may be empty; operations then fail
// fast without touching the network.
func New(cfg *types.Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	posterSize := cfg.PosterSize
	if posterSize == "" {
		posterSize = defaultPosterSize
	}

	return &Client{
		apiHost:    strings.TrimRight(cfg.APIHost, "/"),
		apiKey:     cfg.APIKey,
		posterSize: posterSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// ValidateKey classifies the configured API key with a read-only probe
// against the configuration endpoint. An empty key is an Error without any
// network call.
func (c *Client) ValidateKey(ctx context.Context) apikey.Status {
	if c.apiKey == "" {
		return apikey.StatusError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(configEndpoint, nil), nil)
	if err != nil {
		return apikey.StatusError
	}
	return apikey.Probe(c.httpClient, req)
}

// Search runs one movie search and normalizes every hit. Input validation
// failures return before any network I/O.
func (c *Client) Search(ctx context.Context, query string, page int) (*types.SearchResponse, error) {
	if c.apiKey == "" {
		return nil, types.ErrAPIKeyRequired
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(searchEndpoint, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: providerName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, types.ErrInvalidAPIKey
	default:
		return nil, c.statusError(resp)
	}

	var payload struct {
		Page         int              `json:"page"`
		Results      []types.RawMovie `json:"results"`
		TotalPages   int              `json:"total_pages"`
		TotalResults int              `json:"total_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &types.ProviderError{
			Provider: providerName,
			Code:     "INVALID_RESPONSE",
			Message:  "failed to decode response",
			Err:      err,
		}
	}

	base := c.imageBaseURL(ctx)
	movies := make([]types.Movie, len(payload.Results))
	for i, raw := range payload.Results {
		movies[i] = types.NewMovie(raw, c.posterURL(base, raw.PosterPath))
	}

	return &types.SearchResponse{
		Query:        query,
		Movies:       movies,
		Page:         payload.Page,
		TotalPages:   payload.TotalPages,
		TotalResults: payload.TotalResults,
	}, nil
}

// posterURL joins the cached image base, the configured size and the raw
// poster path. Empty when either side is missing.
func (c *Client) posterURL(base, posterPath string) string {
	if base == "" || posterPath == "" {
		return ""
	}
	return base + c.posterSize + posterPath
}

// imageBaseURL returns the images base URL from the provider configuration,
// fetching it on first use. A failed fetch leaves the cache empty so poster
// URLs degrade to "" instead of failing the search.
func (c *Client) imageBaseURL(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.imageBase != "" {
		return c.imageBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(configEndpoint, nil), nil)
	if err != nil {
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to fetch image configuration", zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("image configuration request rejected", zap.Int("status", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	c.imageBase = gjson.GetBytes(body, "images.base_url").String()
	return c.imageBase
}

// statusError builds a ProviderError from a non-200, non-401 response,
// preferring the provider-supplied status_message.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	message := gjson.GetBytes(body, "status_message").String()
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &types.ProviderError{
		Provider: providerName,
		Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Message:  message,
	}
}

// endpoint builds a full URL with the api_key parameter appended.
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	return c.apiHost + path + "?" + params.Encode()
}
