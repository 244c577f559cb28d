package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"advision/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTextResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	encoded, _ := json.Marshal(resp)
	return string(encoded)
}

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGeminiClient(server.URL, "test-key", "gemini-1.5-flash", 5*time.Second, 100, testLogger(), testMetrics)
}

func TestGeminiAnalyzeAdsSetsCorrelationKeys(t *testing.T) {
	analysisJSON := `{
		"marketingStrategy": {"primaryStrategy": "Urgency & Scarcity", "callToAction": "Shop Now", "valueProposition": "Half price"},
		"emotionalAnalysis": {"primaryEmotion": "Urgency", "emotionalScore": 80, "emotionalTriggers": ["Limited time"]},
		"sentimentAnalysis": {"overallSentiment": "positive", "sentimentScore": 60, "keyPhrases": ["flash sale"]},
		"hooks": {"primaryHook": "FLASH SALE", "hookType": "urgency", "hookEffectiveness": 85},
		"performanceMetrics": {"estimatedEngagement": 70, "conversionPotential": 65, "viralityScore": 50}
	}`

	var calls int
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(geminiTextResponse("Here is the analysis:\n" + analysisJSON)))
	})

	ads := []domain.Ad{
		{ID: "ad-1", AdCreativeBody: "FLASH SALE"},
		{ID: "ad-2", AdCreativeBody: "New launch"},
	}
	results, err := client.AnalyzeAds(context.Background(), ads)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, calls)

	assert.Equal(t, "ad-1", results[0].AdID)
	assert.Equal(t, ads[0], results[0].Ad)
	assert.Equal(t, "ad-2", results[1].AdID)
	assert.Equal(t, "Urgency & Scarcity", results[0].MarketingStrategy.PrimaryStrategy)
	assert.Equal(t, domain.SentimentPositive, results[0].SentimentAnalysis.OverallSentiment)
}

func TestGeminiAnalyzeAdsAtomicFailure(t *testing.T) {
	var calls int
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(geminiTextResponse(`{"hooks": {"primaryHook": "x"}}`)))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.AnalyzeAds(context.Background(), []domain.Ad{{ID: "a"}, {ID: "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ad b")
}

func TestGeminiGenerateInsights(t *testing.T) {
	insightsJSON := `{
		"competitiveAnalysis": {"strengths": ["strong hooks"], "weaknesses": ["generic CTAs"], "opportunities": ["differentiation"], "threats": ["saturation"]},
		"competitiveAdvantage": {"uniquePositioning": "stand out", "differentiationStrategy": "storytelling", "valueProposition": "clear value", "targetAudience": "underserved"}
	}`
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse("```json\n" + insightsJSON + "\n```")))
	})

	insights, err := client.GenerateInsights(context.Background(), []domain.AdAnalysis{{AdID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, "stand out", insights.CompetitiveAdvantage.UniquePositioning)
	assert.Equal(t, []string{"strong hooks"}, insights.CompetitiveAnalysis.Strengths)
}

func TestGeminiGenerateBlueprint(t *testing.T) {
	blueprintJSON := `{
		"campaignOverview": "Awareness push",
		"creativeStrategy": "Bold visuals",
		"marketingStrategy": "Multi-channel",
		"implementationPlan": {"phase1": "Launch", "phase2": "Iterate", "phase3": "Scale", "successMetrics": ["CTR"]},
		"competitiveAdvantage": {"differentiationPoints": ["unique voice"], "marketPositioning": "leader", "expectedOutcomes": ["growth"]}
	}`
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse(blueprintJSON)))
	})

	blueprint, err := client.GenerateBlueprint(context.Background(),
		domain.CampaignInput{BrandName: "Acme", Industry: "Retail", TargetAudience: "Adults", Objective: "awareness"},
		domain.SmartInsights{})
	require.NoError(t, err)
	assert.False(t, blueprint.IsZero())
	assert.Equal(t, "Launch", blueprint.ImplementationPlan.Phase1)
}

func TestGeminiChatFoldsTranscript(t *testing.T) {
	var prompt string
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		w.Write([]byte(geminiTextResponse("  Focus on ROAS.  ")))
	})

	reply, err := client.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "You are a marketing expert."},
		{Role: domain.RoleUser, Content: "How do I measure my ads?"},
		{Role: domain.RoleAssistant, Content: "Track conversions."},
		{Role: domain.RoleUser, Content: "Which metric first?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Focus on ROAS.", reply)

	assert.Contains(t, prompt, "You are a marketing expert.")
	assert.Contains(t, prompt, "User: How do I measure my ads?")
	assert.Contains(t, prompt, "AdVision AI: Track conversions.")
	assert.True(t, len(prompt) > 0 && prompt[len(prompt)-len("AdVision AI:"):] == "AdVision AI:")
}

func TestGeminiMalformedOutput(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiTextResponse("I cannot answer that in JSON, sorry.")))
	})

	_, err := client.GenerateInsights(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestGeminiUpstreamError(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GenerateBlueprint(context.Background(), domain.CampaignInput{}, domain.SmartInsights{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDecodeModelJSONExtractsObject(t *testing.T) {
	var out map[string]string
	err := decodeModelJSON("prefix {\"a\": \"b\"} suffix", &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, out)

	err = decodeModelJSON("no braces here", &out)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
