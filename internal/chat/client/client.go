package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/chat/types"
	"github.com/hellodash/dashboard-backend/internal/pkg/apikey"
)

const (
	completionsEndpoint = "/chat/completions"
	modelsEndpoint      = "/models"

	providerName = "openai"

	// Returned verbatim when a 200 response carries no choices. The call
	// still succeeded, so this is a placeholder, not an error.
	noResponseText = "No response generated"

	defaultModel       = "gpt-3.5-turbo"
	defaultTemperature = 0.7

	completionTimeout = 30 * time.Second
	probeTimeout      = 10 * time.Second
)

// Client is a single-credential chat-completions wrapper. It keeps no state
// across calls.
type Client struct {
	apiHost     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// New creates a chat client. The API key may be empty; operations then fail
// fast without touching the network.
func New(cfg *types.Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = completionTimeout
	}

	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	return &Client{
		apiHost:     strings.TrimRight(cfg.APIHost, "/"),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}, nil
}

// ValidateKey classifies the configured API key with a read-only probe
// against the models endpoint. An empty key is an Error without any network
// call.
func (c *Client) ValidateKey(ctx context.Context) apikey.Status {
	if c.apiKey == "" {
		return apikey.StatusError
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, modelsEndpoint, nil)
	if err != nil {
		return apikey.StatusError
	}
	return apikey.Probe(c.httpClient, req)
}

// Complete performs one chat completion. The message list is sent in caller
// order; MaxTokens is left out of the payload when nil. Input validation
// failures return before any network I/O.
func (c *Client) Complete(ctx context.Context, req *types.CompletionRequest) (*types.CompletionResult, error) {
	if c.apiKey == "" {
		return nil, types.ErrAPIKeyRequired
	}
	if len(req.Messages) == 0 {
		return nil, types.ErrEmptyConversation
	}

	payload := *req
	if payload.Model == "" {
		payload.Model = c.model
	}
	if payload.Temperature == 0 {
		payload.Temperature = c.temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, completionsEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
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
	case http.StatusTooManyRequests:
		return nil, types.ErrRateLimited
	default:
		return nil, c.statusError(resp)
	}

	var completion struct {
		Model   string `json:"model"`
		Choices []struct {
			Message      types.Message `json:"message"`
			FinishReason string        `json:"finish_reason"`
		} `json:"choices"`
		Usage types.Usage `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, &types.ProviderError{
			Provider: providerName,
			Code:     "INVALID_RESPONSE",
			Message:  "failed to decode response",
			Err:      err,
		}
	}

	result := &types.CompletionResult{
		Text:         noResponseText,
		Model:        completion.Model,
		Usage:        completion.Usage,
		FinishReason: "unknown",
	}
	if result.Model == "" {
		result.Model = payload.Model
	}
	if len(completion.Choices) > 0 {
		result.Text = completion.Choices[0].Message.Content
		if completion.Choices[0].FinishReason != "" {
			result.FinishReason = completion.Choices[0].FinishReason
		}
	}
	return result, nil
}

// CompleteMessage wraps Complete for the single-message case, prepending an
// optional system message.
func (c *Client) CompleteMessage(ctx context.Context, message, systemMessage string) (*types.CompletionResult, error) {
	if c.apiKey == "" {
		return nil, types.ErrAPIKeyRequired
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, types.ErrEmptyMessage
	}

	var messages []types.Message
	if systemMessage != "" {
		messages = append(messages, types.Message{Role: "system", Content: systemMessage})
	}
	messages = append(messages, types.Message{Role: "user", Content: message})

	return c.Complete(ctx, &types.CompletionRequest{Messages: messages})
}

// ListModels fetches the provider's model list filtered to the chat models
// the frontend offers (gpt-* and claude-* IDs).
func (c *Client) ListModels(ctx context.Context) ([]types.ModelInfo, error) {
	if c.apiKey == "" {
		return nil, types.ErrAPIKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, modelsEndpoint, nil)
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

	var listing struct {
		Data []types.ModelInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, &types.ProviderError{
			Provider: providerName,
			Code:     "INVALID_RESPONSE",
			Message:  "failed to decode response",
			Err:      err,
		}
	}

	models := make([]types.ModelInfo, 0, len(listing.Data))
	for _, m := range listing.Data {
		if strings.HasPrefix(m.ID, "gpt-") || strings.HasPrefix(m.ID, "claude-") {
			models = append(models, m)
		}
	}
	return models, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiHost+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// statusError builds a ProviderError from an unexpected response, preferring
// the provider-supplied error.message.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &types.ProviderError{
		Provider: providerName,
		Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
		Message:  message,
	}
}
