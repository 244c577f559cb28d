package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"golang.org/x/time/rate"
)

// OpenAIChatClient answers assistant turns through an OpenAI-compatible
// chat completions endpoint.
type OpenAIChatClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewOpenAIChatClient(baseURL, apiKey, model string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *OpenAIChatClient {
	return &OpenAIChatClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
	}
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	TopP        float64              `json:"top_p"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIChatClient) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "rate_limit")
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		TopP:        0.9,
	})
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "json_marshal")
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "request_creation")
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "network_error")
		return "", fmt.Errorf("failed to call chat API: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("openai_chat", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "read_body")
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.metrics.RecordExternalAPIFailure("openai_chat", "json_parse")
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		c.metrics.RecordExternalAPIFailure("openai_chat", "empty_response")
		return "", fmt.Errorf("chat response carried no choices: %w", domain.ErrMalformedResponse)
	}

	c.metrics.RecordExternalAPICall("openai_chat", "success", duration)
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
