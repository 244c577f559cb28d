package domain

import "math"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type MarketingStrategy struct {
	PrimaryStrategy  string `json:"primaryStrategy"`
	CallToAction     string `json:"callToAction"`
	ValueProposition string `json:"valueProposition"`
}

type EmotionalAnalysis struct {
	PrimaryEmotion    string   `json:"primaryEmotion"`
	EmotionalScore    float64  `json:"emotionalScore"`
	EmotionalTriggers []string `json:"emotionalTriggers"`
}

type SentimentAnalysis struct {
	OverallSentiment Sentiment `json:"overallSentiment"`
	SentimentScore   float64   `json:"sentimentScore"`
	KeyPhrases       []string  `json:"keyPhrases"`
}

type Hooks struct {
	PrimaryHook       string  `json:"primaryHook"`
	HookType          string  `json:"hookType"`
	HookEffectiveness float64 `json:"hookEffectiveness"`
}

type PerformanceMetrics struct {
	EstimatedEngagement float64 `json:"estimatedEngagement"`
	ConversionPotential float64 `json:"conversionPotential"`
	ViralityScore       float64 `json:"viralityScore"`
}

// AdAnalysis is the structured analysis of one ad. AdID is the correlation
// key that ties a result back to its source ad; results are matched by it,
// never by array position.
type AdAnalysis struct {
	AdID               string             `json:"ad_id"`
	Ad                 Ad                 `json:"ad"`
	MarketingStrategy  MarketingStrategy  `json:"marketingStrategy"`
	EmotionalAnalysis  EmotionalAnalysis  `json:"emotionalAnalysis"`
	SentimentAnalysis  SentimentAnalysis  `json:"sentimentAnalysis"`
	Hooks              Hooks              `json:"hooks"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
}

// AnalysisAggregates are the rounded per-metric means shown on the
// analysis dashboard.
type AnalysisAggregates struct {
	AdCount              int `json:"ad_count"`
	AvgEngagement        int `json:"avg_engagement"`
	AvgConversion        int `json:"avg_conversion"`
	AvgVirality          int `json:"avg_virality"`
	AvgEmotionalScore    int `json:"avg_emotional_score"`
	AvgHookEffectiveness int `json:"avg_hook_effectiveness"`
}

// Aggregate computes the dashboard means over an analysis set. An empty
// set yields all zeros rather than dividing by zero.
func Aggregate(analysis []AdAnalysis) AnalysisAggregates {
	agg := AnalysisAggregates{AdCount: len(analysis)}
	if len(analysis) == 0 {
		return agg
	}

	var engagement, conversion, virality, emotional, hook float64
	for _, a := range analysis {
		engagement += a.PerformanceMetrics.EstimatedEngagement
		conversion += a.PerformanceMetrics.ConversionPotential
		virality += a.PerformanceMetrics.ViralityScore
		emotional += a.EmotionalAnalysis.EmotionalScore
		hook += a.Hooks.HookEffectiveness
	}

	n := float64(len(analysis))
	agg.AvgEngagement = int(math.Round(engagement / n))
	agg.AvgConversion = int(math.Round(conversion / n))
	agg.AvgVirality = int(math.Round(virality / n))
	agg.AvgEmotionalScore = int(math.Round(emotional / n))
	agg.AvgHookEffectiveness = int(math.Round(hook / n))
	return agg
}
