package domain

import "time"

// CampaignInput is the user-entered form state collected by the wizard's
// input step. Only the four fields checked by Validate gate blueprint
// generation; everything else is optional color.
type CampaignInput struct {
	BrandName           string   `json:"brandName"`
	Industry            string   `json:"industry"`
	TargetAudience      string   `json:"targetAudience"`
	Objective           string   `json:"objective"`
	BudgetTier          string   `json:"budgetTier,omitempty"`
	Timeline            string   `json:"timeline,omitempty"`
	Platforms           []string `json:"platforms,omitempty"`
	BrandPersonality    string   `json:"brandPersonality,omitempty"`
	UniqueSellingPoints []string `json:"uniqueSellingPoints,omitempty"`
}

// Validate checks the required fields. It returns a *ValidationError
// naming the first missing field.
func (c CampaignInput) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"brandName", c.BrandName},
		{"industry", c.Industry},
		{"targetAudience", c.TargetAudience},
		{"objective", c.Objective},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field}
		}
	}
	return nil
}

type BlueprintImplementationPlan struct {
	Phase1         string   `json:"phase1"`
	Phase2         string   `json:"phase2"`
	Phase3         string   `json:"phase3"`
	SuccessMetrics []string `json:"successMetrics"`
}

type BlueprintAdvantage struct {
	DifferentiationPoints []string `json:"differentiationPoints"`
	MarketPositioning     string   `json:"marketPositioning"`
	ExpectedOutcomes      []string `json:"expectedOutcomes"`
}

// CampaignBlueprint is the synthesized campaign plan built from the user's
// input and the smart insights.
type CampaignBlueprint struct {
	CampaignOverview     string                      `json:"campaignOverview"`
	CreativeStrategy     string                      `json:"creativeStrategy"`
	MarketingStrategy    string                      `json:"marketingStrategy"`
	ImplementationPlan   BlueprintImplementationPlan `json:"implementationPlan"`
	CompetitiveAdvantage BlueprintAdvantage          `json:"competitiveAdvantage"`
}

// IsZero reports whether no blueprint has been generated yet.
func (b CampaignBlueprint) IsZero() bool {
	return b.CampaignOverview == "" && b.CreativeStrategy == "" && b.MarketingStrategy == ""
}

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// CampaignSummary is the terminal record appended to the dashboard list.
// Degraded marks summaries whose image is the placeholder because the
// provider call failed.
type CampaignSummary struct {
	ID             string            `json:"id"`
	CreatedAt      time.Time         `json:"createdAt"`
	BrandName      string            `json:"brandName"`
	Analysis       []AdAnalysis      `json:"analysis"`
	Insights       SmartInsights     `json:"insights"`
	Blueprint      CampaignBlueprint `json:"blueprint"`
	GeneratedImage string            `json:"generatedImage"`
	Degraded       bool              `json:"degraded"`
	Status         CampaignStatus    `json:"status"`
}

// WizardStep is one screen of the campaign creation wizard. The flow is
// forward-only; back navigation re-renders the prior step without
// discarding anything already produced.
type WizardStep string

const (
	StepSummary   WizardStep = "summary"
	StepInput     WizardStep = "input"
	StepBlueprint WizardStep = "blueprint"
	StepImage     WizardStep = "image"
)

var wizardOrder = []WizardStep{StepSummary, StepInput, StepBlueprint, StepImage}

// Next returns the following wizard step, or the same step when already
// at the end.
func (s WizardStep) Next() WizardStep {
	for i, step := range wizardOrder {
		if step == s && i < len(wizardOrder)-1 {
			return wizardOrder[i+1]
		}
	}
	return s
}

// Prev returns the preceding wizard step, or the same step when already
// at the start.
func (s WizardStep) Prev() WizardStep {
	for i, step := range wizardOrder {
		if step == s && i > 0 {
			return wizardOrder[i-1]
		}
	}
	return s
}

// Valid reports whether s names a known wizard step.
func (s WizardStep) Valid() bool {
	for _, step := range wizardOrder {
		if step == s {
			return true
		}
	}
	return false
}
