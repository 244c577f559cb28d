package infrastructure

import (
	"context"
	"testing"

	"advision/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineAnalyzerCorrelatesAndIsDeterministic(t *testing.T) {
	analyzer := NewOfflineAnalyzer(testLogger())
	ads := []domain.Ad{
		{ID: "a1", AdCreativeBody: "Try our new coffee blend. Rich taste, fair trade.", Category: "Coffee"},
		{ID: "a2", AdCreativeBody: "Don't miss the sale!", Category: "Fashion & Apparel"},
	}

	first, err := analyzer.AnalyzeAds(context.Background(), ads)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "a1", first[0].AdID)
	assert.Equal(t, ads[0], first[0].Ad)
	assert.NotEmpty(t, first[0].MarketingStrategy.PrimaryStrategy)
	assert.NotEmpty(t, first[0].Hooks.PrimaryHook)

	// Same content, same scores.
	second, err := analyzer.AnalyzeAds(context.Background(), ads)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOfflineInsightSynthesizerReflectsCommonStrategy(t *testing.T) {
	synthesizer := NewOfflineInsightSynthesizer(testLogger())
	analysis := []domain.AdAnalysis{
		{AdID: "a", MarketingStrategy: domain.MarketingStrategy{PrimaryStrategy: "Social Proof"}},
		{AdID: "b", MarketingStrategy: domain.MarketingStrategy{PrimaryStrategy: "Social Proof"}},
		{AdID: "c", MarketingStrategy: domain.MarketingStrategy{PrimaryStrategy: "Urgency & Scarcity"}},
	}

	insights, err := synthesizer.GenerateInsights(context.Background(), analysis)
	require.NoError(t, err)
	assert.Contains(t, insights.CompetitiveAnalysis.Strengths[0], "Social Proof")
	assert.Contains(t, insights.CompetitiveAdvantage.UniquePositioning, "Social Proof")
	assert.NotEmpty(t, insights.ImplementationPlan.SuccessMetrics)
}

func TestOfflineBlueprintGeneratorFillsFromInput(t *testing.T) {
	generator := NewOfflineBlueprintGenerator(testLogger())
	input := domain.CampaignInput{
		BrandName:      "Acme",
		Industry:       "Retail",
		TargetAudience: "Adults 25-34",
		Objective:      "awareness",
	}
	insights := domain.SmartInsights{
		ImplementationPlan: domain.InsightImplementationPlan{SuccessMetrics: []string{"CTR", "ROAS"}},
	}

	blueprint, err := generator.GenerateBlueprint(context.Background(), input, insights)
	require.NoError(t, err)
	assert.False(t, blueprint.IsZero())
	assert.Contains(t, blueprint.CampaignOverview, "Acme")
	assert.Contains(t, blueprint.CampaignOverview, "Adults 25-34")
	assert.Equal(t, []string{"CTR", "ROAS"}, blueprint.ImplementationPlan.SuccessMetrics)
	assert.Contains(t, blueprint.ImplementationPlan.Phase3, "awareness")
}

func TestOfflineChatResponder(t *testing.T) {
	responder := NewOfflineChatResponder()
	ctx := context.Background()

	// First user turn always greets.
	reply, err := responder.Chat(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Hello")

	// Marketing questions get structured advice.
	reply, err = responder.Chat(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "Hello!"},
		{Role: domain.RoleUser, Content: "How do I improve my campaign ROI?"},
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "CTR")

	// Off-topic questions are redirected.
	reply, err = responder.Chat(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "Hello!"},
		{Role: domain.RoleUser, Content: "What's the weather like?"},
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "marketing goals")
}
