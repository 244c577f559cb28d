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

// GeminiClient talks to the Gemini generateContent API. It implements
// the analyzer, synthesizer, blueprint and chat collaborator interfaces.
type GeminiClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewGeminiClient(baseURL, apiKey, model string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *GeminiClient {
	return &GeminiClient{
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

// Gemini wire shapes.

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generateContent sends one prompt and returns the model's text.
func (c *GeminiClient) generateContent(ctx context.Context, api, prompt string, cfg generationConfig) (string, error) {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure(api, "rate_limit")
		return "", fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "json_marshal")
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "request_creation")
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "network_error")
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall(api, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return "", fmt.Errorf("Gemini API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(api, "read_body")
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.metrics.RecordExternalAPIFailure(api, "json_parse")
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		c.metrics.RecordExternalAPIFailure(api, "empty_response")
		return "", fmt.Errorf("Gemini response carried no candidates: %w", domain.ErrMalformedResponse)
	}

	c.metrics.RecordExternalAPICall(api, "success", duration)
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// AnalyzeAds analyzes every selected ad. The result set is atomic: the
// first per-ad failure fails the whole call, and every result carries
// the source ad's ID as its correlation key.
func (c *GeminiClient) AnalyzeAds(ctx context.Context, ads []domain.Ad) ([]domain.AdAnalysis, error) {
	results := make([]domain.AdAnalysis, 0, len(ads))

	for _, ad := range ads {
		text, err := c.generateContent(ctx, "gemini_analysis", analysisPrompt(ad), generationConfig{
			Temperature:     0.3,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 2000,
		})
		if err != nil {
			return nil, fmt.Errorf("analysis failed for ad %s: %w", ad.ID, err)
		}

		var analysis domain.AdAnalysis
		if err := decodeModelJSON(text, &analysis); err != nil {
			return nil, fmt.Errorf("analysis for ad %s: %w", ad.ID, err)
		}
		analysis.AdID = ad.ID
		analysis.Ad = ad
		results = append(results, analysis)
	}

	c.logger.WithContext(ctx).WithField("ads", len(ads)).Info("Analyzed ad set")
	return results, nil
}

// GenerateInsights synthesizes one SmartInsights record from the full
// analysis set in a single call.
func (c *GeminiClient) GenerateInsights(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
	text, err := c.generateContent(ctx, "gemini_insights", insightsPrompt(analysis), generationConfig{
		Temperature:     0.4,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 3000,
	})
	if err != nil {
		return domain.SmartInsights{}, fmt.Errorf("insight generation failed: %w", err)
	}

	var insights domain.SmartInsights
	if err := decodeModelJSON(text, &insights); err != nil {
		return domain.SmartInsights{}, fmt.Errorf("insight generation: %w", err)
	}

	c.logger.WithContext(ctx).WithField("analyses", len(analysis)).Info("Generated smart insights")
	return insights, nil
}

// GenerateBlueprint builds the campaign blueprint from the user's input
// and the synthesized insights.
func (c *GeminiClient) GenerateBlueprint(ctx context.Context, input domain.CampaignInput, insights domain.SmartInsights) (domain.CampaignBlueprint, error) {
	text, err := c.generateContent(ctx, "gemini_blueprint", blueprintPrompt(input, insights), generationConfig{
		Temperature:     0.7,
		TopP:            0.9,
		TopK:            40,
		MaxOutputTokens: 1500,
	})
	if err != nil {
		return domain.CampaignBlueprint{}, fmt.Errorf("blueprint generation failed: %w", err)
	}

	var blueprint domain.CampaignBlueprint
	if err := decodeModelJSON(text, &blueprint); err != nil {
		return domain.CampaignBlueprint{}, fmt.Errorf("blueprint generation: %w", err)
	}

	c.logger.WithContext(ctx).WithField("brand", input.BrandName).Info("Generated campaign blueprint")
	return blueprint, nil
}

// Chat answers a marketing conversation. The system message, if present,
// is folded into the prompt ahead of the transcript.
func (c *GeminiClient) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			b.WriteString(m.Content)
			b.WriteString("\n\n")
		case domain.RoleUser:
			fmt.Fprintf(&b, "User: %s\n\n", m.Content)
		case domain.RoleAssistant:
			fmt.Fprintf(&b, "AdVision AI: %s\n\n", m.Content)
		}
	}
	b.WriteString("AdVision AI:")

	text, err := c.generateContent(ctx, "gemini_chat", b.String(), generationConfig{
		Temperature:     0.7,
		TopP:            0.9,
		TopK:            40,
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// decodeModelJSON extracts the first JSON object from model output and
// decodes it. Models wrap JSON in prose and code fences often enough
// that decoding the raw text directly is not an option.
func decodeModelJSON(text string, out any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in model output: %w", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), out); err != nil {
		return fmt.Errorf("undecodable model output: %w", domain.ErrMalformedResponse)
	}
	return nil
}

func analysisPrompt(ad domain.Ad) string {
	return fmt.Sprintf(`Analyze this advertising creative and provide detailed insights in JSON format:

Ad Creative: %q
Business Type: %s
Category: %s
Platform: %s
Ad Type: %s
Target Audience: %s
Spend: $%.0f
Impressions: %d

Please provide analysis in this exact JSON format:
{
    "marketingStrategy": {
        "primaryStrategy": "string",
        "callToAction": "string",
        "valueProposition": "string"
    },
    "emotionalAnalysis": {
        "primaryEmotion": "string",
        "emotionalScore": number (0-100),
        "emotionalTriggers": ["string", "string"]
    },
    "sentimentAnalysis": {
        "overallSentiment": "positive|negative|neutral",
        "sentimentScore": number (-100 to 100),
        "keyPhrases": ["string", "string", "string"]
    },
    "hooks": {
        "primaryHook": "string",
        "hookType": "curiosity|urgency|social_proof|fear|benefit|story",
        "hookEffectiveness": number (0-100)
    },
    "performanceMetrics": {
        "estimatedEngagement": number (0-100),
        "conversionPotential": number (0-100),
        "viralityScore": number (0-100)
    }
}

Focus on marketing strategy and positioning, emotional triggers, sentiment and tone, hook effectiveness, and performance potential.`,
		ad.AdCreativeBody, ad.BusinessType, ad.Category, ad.Platform, ad.AdType, ad.TargetAudience, ad.Spend, ad.Impressions)
}

func insightsPrompt(analysis []domain.AdAnalysis) string {
	encoded, _ := json.MarshalIndent(analysis, "", "  ")
	return fmt.Sprintf(`As a marketing expert, analyze these competitor ad analyses and provide actionable insights for creating better ads:

%s

Based on this analysis, provide comprehensive insights in this exact JSON format:
{
    "competitiveAnalysis": {
        "strengths": ["string", "string", "string"],
        "weaknesses": ["string", "string", "string"],
        "opportunities": ["string", "string", "string"],
        "threats": ["string", "string", "string"]
    },
    "strategicRecommendations": {
        "marketingStrategy": ["string", "string", "string"],
        "emotionalAppeal": ["string", "string", "string"],
        "hookOptimization": ["string", "string", "string"],
        "performanceOptimization": ["string", "string", "string"]
    },
    "creativeGuidelines": {
        "messaging": ["string", "string", "string"],
        "visualElements": ["string", "string", "string"],
        "callToAction": ["string", "string", "string"],
        "toneOfVoice": ["string", "string", "string"]
    },
    "implementationPlan": {
        "immediateActions": ["string", "string", "string"],
        "shortTermGoals": ["string", "string", "string"],
        "longTermStrategy": ["string", "string", "string"],
        "successMetrics": ["string", "string", "string"]
    },
    "competitiveAdvantage": {
        "uniquePositioning": "string",
        "differentiationStrategy": "string",
        "valueProposition": "string",
        "targetAudience": "string"
    }
}

Focus on gaps in competitor strategies, opportunities for differentiation, actionable recommendations, creative and messaging improvements, and an implementation roadmap.`, encoded)
}

func blueprintPrompt(input domain.CampaignInput, insights domain.SmartInsights) string {
	encodedInput, _ := json.MarshalIndent(input, "", "  ")
	encodedInsights, _ := json.MarshalIndent(insights, "", "  ")
	return fmt.Sprintf(`As a marketing expert, design a campaign blueprint for this brand using the competitive insights below.

Campaign input:
%s

Competitive insights:
%s

Provide the blueprint in this exact JSON format:
{
    "campaignOverview": "string",
    "creativeStrategy": "string",
    "marketingStrategy": "string",
    "implementationPlan": {
        "phase1": "string",
        "phase2": "string",
        "phase3": "string",
        "successMetrics": ["string", "string", "string"]
    },
    "competitiveAdvantage": {
        "differentiationPoints": ["string", "string", "string"],
        "marketPositioning": "string",
        "expectedOutcomes": ["string", "string", "string"]
    }
}

Ground every recommendation in the provided insights and tailor the messaging to the brand, industry, audience and objective.`, encodedInput, encodedInsights)
}
