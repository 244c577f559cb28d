package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignInputValidate(t *testing.T) {
	valid := CampaignInput{
		BrandName:      "Acme",
		Industry:       "Retail",
		TargetAudience: "Adults 25-34",
		Objective:      "awareness",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		field  string
		mutate func(*CampaignInput)
	}{
		{"brandName", func(i *CampaignInput) { i.BrandName = "" }},
		{"industry", func(i *CampaignInput) { i.Industry = "" }},
		{"targetAudience", func(i *CampaignInput) { i.TargetAudience = "" }},
		{"objective", func(i *CampaignInput) { i.Objective = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			err := input.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}

	// Optional fields never gate validation.
	sparse := valid
	sparse.Platforms = nil
	sparse.BudgetTier = ""
	assert.NoError(t, sparse.Validate())
}

func TestWizardStepNavigation(t *testing.T) {
	assert.Equal(t, StepInput, StepSummary.Next())
	assert.Equal(t, StepBlueprint, StepInput.Next())
	assert.Equal(t, StepImage, StepBlueprint.Next())
	assert.Equal(t, StepImage, StepImage.Next(), "last step stays put")

	assert.Equal(t, StepSummary, StepSummary.Prev(), "first step stays put")
	assert.Equal(t, StepBlueprint, StepImage.Prev())

	assert.True(t, StepSummary.Valid())
	assert.False(t, WizardStep("bogus").Valid())
}

func TestBlueprintIsZero(t *testing.T) {
	assert.True(t, CampaignBlueprint{}.IsZero())
	assert.False(t, CampaignBlueprint{CampaignOverview: "x"}.IsZero())
	assert.False(t, CampaignBlueprint{CreativeStrategy: "x"}.IsZero())
}

func TestAggregate(t *testing.T) {
	assert.Equal(t, AnalysisAggregates{}, Aggregate(nil), "empty set yields zeros")

	analysis := []AdAnalysis{
		{
			PerformanceMetrics: PerformanceMetrics{EstimatedEngagement: 40, ConversionPotential: 70, ViralityScore: 30},
			EmotionalAnalysis:  EmotionalAnalysis{EmotionalScore: 55},
			Hooks:              Hooks{HookEffectiveness: 61},
		},
		{
			PerformanceMetrics: PerformanceMetrics{EstimatedEngagement: 60, ConversionPotential: 71, ViralityScore: 31},
			EmotionalAnalysis:  EmotionalAnalysis{EmotionalScore: 56},
			Hooks:              Hooks{HookEffectiveness: 62},
		},
	}

	agg := Aggregate(analysis)
	assert.Equal(t, 2, agg.AdCount)
	assert.Equal(t, 50, agg.AvgEngagement)
	assert.Equal(t, 71, agg.AvgConversion, "70.5 rounds up")
	assert.Equal(t, 31, agg.AvgVirality, "30.5 rounds up")
	assert.Equal(t, 56, agg.AvgEmotionalScore)
	assert.Equal(t, 62, agg.AvgHookEffectiveness, "61.5 rounds up")
}

func TestUserContextMerge(t *testing.T) {
	base := UserContext{BusinessType: "ecommerce", Budget: "$5k"}
	merged := base.Merge(UserContext{Timeline: "next month", Goals: []string{"leads"}})

	assert.Equal(t, "ecommerce", merged.BusinessType)
	assert.Equal(t, "$5k", merged.Budget)
	assert.Equal(t, "next month", merged.Timeline)
	assert.Equal(t, []string{"leads"}, merged.Goals)

	// Empty overlay changes nothing.
	assert.Equal(t, merged, merged.Merge(UserContext{}))
}
