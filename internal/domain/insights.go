package domain

type CompetitiveAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type StrategicRecommendations struct {
	MarketingStrategy       []string `json:"marketingStrategy"`
	EmotionalAppeal         []string `json:"emotionalAppeal"`
	HookOptimization        []string `json:"hookOptimization"`
	PerformanceOptimization []string `json:"performanceOptimization"`
}

type CreativeGuidelines struct {
	Messaging      []string `json:"messaging"`
	VisualElements []string `json:"visualElements"`
	CallToAction   []string `json:"callToAction"`
	ToneOfVoice    []string `json:"toneOfVoice"`
}

type InsightImplementationPlan struct {
	ImmediateActions []string `json:"immediateActions"`
	ShortTermGoals   []string `json:"shortTermGoals"`
	LongTermStrategy []string `json:"longTermStrategy"`
	SuccessMetrics   []string `json:"successMetrics"`
}

type CompetitiveAdvantage struct {
	UniquePositioning       string `json:"uniquePositioning"`
	DifferentiationStrategy string `json:"differentiationStrategy"`
	ValueProposition        string `json:"valueProposition"`
	TargetAudience          string `json:"targetAudience"`
}

// SmartInsights is the single cross-ad synthesis derived from one analysis
// set. SourceSequence records the snapshot sequence of the analysis input
// it was derived from, so downstream stages can detect stale input.
type SmartInsights struct {
	CompetitiveAnalysis      CompetitiveAnalysis       `json:"competitiveAnalysis"`
	StrategicRecommendations StrategicRecommendations  `json:"strategicRecommendations"`
	CreativeGuidelines       CreativeGuidelines        `json:"creativeGuidelines"`
	ImplementationPlan       InsightImplementationPlan `json:"implementationPlan"`
	CompetitiveAdvantage     CompetitiveAdvantage      `json:"competitiveAdvantage"`
	SourceSequence           uint64                    `json:"source_sequence"`
}
