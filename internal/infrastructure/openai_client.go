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

// OpenAIImageClient generates campaign visuals through the OpenAI images
// API. Failures propagate to the caller; the campaign stage decides
// whether to degrade to a placeholder.
type OpenAIImageClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewOpenAIImageClient(baseURL, apiKey, model string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *OpenAIImageClient {
	return &OpenAIImageClient{
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

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (c *OpenAIImageClient) GenerateImage(ctx context.Context, input domain.CampaignInput, blueprint domain.CampaignBlueprint) (string, error) {
	start := time.Now()

	if c.apiKey == "" {
		c.metrics.RecordExternalAPIFailure("openai_images", "no_credential")
		return "", fmt.Errorf("image provider credential not configured")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "rate_limit")
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(imageRequest{
		Model:          c.model,
		Prompt:         imagePrompt(input, blueprint),
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "url",
	})
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "json_marshal")
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "request_creation")
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "network_error")
		return "", fmt.Errorf("failed to call image API: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("openai_images", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return "", fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "read_body")
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed imageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.metrics.RecordExternalAPIFailure("openai_images", "json_parse")
		return "", fmt.Errorf("failed to parse image response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		c.metrics.RecordExternalAPIFailure("openai_images", "empty_response")
		return "", fmt.Errorf("image response carried no URL: %w", domain.ErrMalformedResponse)
	}

	c.metrics.RecordExternalAPICall("openai_images", "success", duration)
	c.logger.WithContext(ctx).WithFields(map[string]any{
		"duration": duration,
		"brand":    input.BrandName,
	}).Info("Generated campaign image")

	return parsed.Data[0].URL, nil
}

func imagePrompt(input domain.CampaignInput, blueprint domain.CampaignBlueprint) string {
	platform := "social media"
	if len(input.Platforms) > 0 {
		platform = strings.Join(input.Platforms, ", ")
	}
	return fmt.Sprintf(`Create a professional marketing campaign visual for:

Brand: %s
Industry: %s
Platform: %s
Objective: %s
Creative direction: %s

The image should be high quality and professional, suitable for %s advertising, visually appealing and modern, with space for text overlay.

Style: Digital art, marketing design, professional advertising, clean and modern`,
		input.BrandName, input.Industry, platform, input.Objective, blueprint.CreativeStrategy, platform)
}
