package infrastructure

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"advision/internal/domain"
	"advision/pkg/logger"
)

// Offline collaborators serve credential-less runs. They produce
// deterministic, content-derived output so the pipeline stays fully
// exercisable without a model provider; they also double as fixtures in
// tests. Each one is a drop-in implementation of a stage interface,
// never a second path inside a stage.

type OfflineAnalyzer struct {
	logger *logger.Logger
}

func NewOfflineAnalyzer(logger *logger.Logger) *OfflineAnalyzer {
	return &OfflineAnalyzer{logger: logger}
}

var (
	offlineStrategies = []string{"Emotional Storytelling", "Social Proof", "Urgency & Scarcity", "Problem-Solution", "Benefit-Driven", "Exclusive Access"}
	offlineEmotions   = []string{"Excitement", "Trust", "Curiosity", "Urgency", "Joy", "Confidence"}
	offlineCTAs       = []string{"Shop Now", "Learn More", "Get Started", "Try Free", "Join Today", "Sign Up"}
	offlineHookTypes  = []string{"curiosity", "urgency", "social_proof", "benefit", "story", "exclusive"}
)

func (a *OfflineAnalyzer) AnalyzeAds(ctx context.Context, ads []domain.Ad) ([]domain.AdAnalysis, error) {
	results := make([]domain.AdAnalysis, 0, len(ads))
	for _, ad := range ads {
		seed := contentSeed(ad.AdCreativeBody)
		body := strings.ToLower(ad.AdCreativeBody)

		sentiment := domain.SentimentPositive
		score := 40 + float64(seed%40)
		if strings.Contains(body, "don't") || strings.Contains(body, "miss") {
			sentiment = domain.SentimentNeutral
			score = 10 + float64(seed%30)
		}

		results = append(results, domain.AdAnalysis{
			AdID: ad.ID,
			Ad:   ad,
			MarketingStrategy: domain.MarketingStrategy{
				PrimaryStrategy:  pick(offlineStrategies, seed),
				CallToAction:     pick(offlineCTAs, seed>>3),
				ValueProposition: fmt.Sprintf("Clear value for %s buyers", strings.ToLower(ad.Category)),
			},
			EmotionalAnalysis: domain.EmotionalAnalysis{
				PrimaryEmotion:    pick(offlineEmotions, seed>>5),
				EmotionalScore:    50 + float64(seed%45),
				EmotionalTriggers: []string{"Limited time", "Personal benefit"},
			},
			SentimentAnalysis: domain.SentimentAnalysis{
				OverallSentiment: sentiment,
				SentimentScore:   score,
				KeyPhrases:       []string{"limited time", "exclusive offer", "proven results"},
			},
			Hooks: domain.Hooks{
				PrimaryHook:       firstSentence(ad.AdCreativeBody),
				HookType:          pick(offlineHookTypes, seed>>7),
				HookEffectiveness: 55 + float64(seed%40),
			},
			PerformanceMetrics: domain.PerformanceMetrics{
				EstimatedEngagement: 45 + float64(seed%50),
				ConversionPotential: 40 + float64((seed>>2)%50),
				ViralityScore:       30 + float64((seed>>4)%55),
			},
		})
	}

	a.logger.WithContext(ctx).WithField("ads", len(ads)).Info("Produced offline ad analysis")
	return results, nil
}

type OfflineInsightSynthesizer struct {
	logger *logger.Logger
}

func NewOfflineInsightSynthesizer(logger *logger.Logger) *OfflineInsightSynthesizer {
	return &OfflineInsightSynthesizer{logger: logger}
}

func (s *OfflineInsightSynthesizer) GenerateInsights(ctx context.Context, analysis []domain.AdAnalysis) (domain.SmartInsights, error) {
	commonStrategy := mostCommon(analysis, func(a domain.AdAnalysis) string { return a.MarketingStrategy.PrimaryStrategy })
	commonEmotion := mostCommon(analysis, func(a domain.AdAnalysis) string { return a.EmotionalAnalysis.PrimaryEmotion })

	insights := domain.SmartInsights{
		CompetitiveAnalysis: domain.CompetitiveAnalysis{
			Strengths: []string{
				fmt.Sprintf("Competitors are using %s effectively", commonStrategy),
				"Strong emotional connection through targeted messaging",
				"Consistent brand positioning across campaigns",
			},
			Weaknesses: []string{
				"Limited differentiation in messaging approach",
				"Over-reliance on single emotional trigger",
				"Generic call-to-action strategies",
			},
			Opportunities: []string{
				"Gap in unique value proposition messaging",
				"Potential for innovative hook strategies",
				"Room for improved emotional storytelling",
			},
			Threats: []string{
				"Market saturation with similar approaches",
				"Risk of being perceived as generic",
				"Potential loss of competitive edge",
			},
		},
		StrategicRecommendations: domain.StrategicRecommendations{
			MarketingStrategy: []string{
				fmt.Sprintf("Differentiate from %s approach", commonStrategy),
				"Focus on unique value proposition",
				"Implement multi-channel strategy",
			},
			EmotionalAppeal: []string{
				fmt.Sprintf("Counter %s with complementary emotions", commonEmotion),
				"Create emotional journey in messaging",
				"Build deeper emotional connections",
			},
			HookOptimization: []string{
				"Develop unique hook patterns",
				"Test curiosity-driven approaches",
				"Implement urgency without pressure",
			},
			PerformanceOptimization: []string{
				"A/B test multiple messaging approaches",
				"Optimize for higher engagement rates",
				"Focus on conversion optimization",
			},
		},
		CreativeGuidelines: domain.CreativeGuidelines{
			Messaging:      []string{"Lead with unique value proposition", "Use storytelling to create connection", "Include social proof elements"},
			VisualElements: []string{"Use contrasting colors to stand out", "Implement dynamic visual storytelling", "Focus on human-centric imagery"},
			CallToAction:   []string{"Create urgency without pressure", "Use action-oriented language", "Offer clear value exchange"},
			ToneOfVoice:    []string{"Maintain professional yet approachable tone", "Use conversational language", "Build trust through authenticity"},
		},
		ImplementationPlan: domain.InsightImplementationPlan{
			ImmediateActions: []string{"Audit current messaging strategy", "Identify unique value propositions", "Plan A/B testing framework"},
			ShortTermGoals:   []string{"Develop differentiated messaging", "Create new creative assets", "Implement tracking mechanisms"},
			LongTermStrategy: []string{"Build brand differentiation", "Establish market leadership", "Create sustainable competitive advantage"},
			SuccessMetrics:   []string{"Engagement rate improvement", "Conversion rate optimization", "Brand recognition growth"},
		},
		CompetitiveAdvantage: domain.CompetitiveAdvantage{
			UniquePositioning:       fmt.Sprintf("Differentiate from %s approach with innovative messaging", commonStrategy),
			DifferentiationStrategy: "Focus on unique value propositions and emotional storytelling",
			ValueProposition:        "Provide clear, compelling reasons to choose your brand",
			TargetAudience:          "Identify and target underserved audience segments",
		},
	}

	s.logger.WithContext(ctx).WithField("analyses", len(analysis)).Info("Produced offline insights")
	return insights, nil
}

// OfflineBlueprintGenerator template-fills a blueprint from the user's
// input and the insights. This is the demoted local path from the
// original client-side implementation, kept only for credential-less
// runs and tests.
type OfflineBlueprintGenerator struct {
	logger *logger.Logger
}

func NewOfflineBlueprintGenerator(logger *logger.Logger) *OfflineBlueprintGenerator {
	return &OfflineBlueprintGenerator{logger: logger}
}

func (g *OfflineBlueprintGenerator) GenerateBlueprint(ctx context.Context, input domain.CampaignInput, insights domain.SmartInsights) (domain.CampaignBlueprint, error) {
	blueprint := domain.CampaignBlueprint{
		CampaignOverview: fmt.Sprintf("%s campaign for %s targeting %s in the %s industry",
			capitalize(input.Objective), input.BrandName, input.TargetAudience, input.Industry),
		CreativeStrategy: fmt.Sprintf("Position %s with %s", input.BrandName,
			strings.ToLower(nonEmpty(insights.CompetitiveAdvantage.DifferentiationStrategy, "a differentiated creative approach"))),
		MarketingStrategy: nonEmpty(insights.CompetitiveAdvantage.UniquePositioning,
			fmt.Sprintf("Establish %s as the leading choice for %s", input.BrandName, input.TargetAudience)),
		ImplementationPlan: domain.BlueprintImplementationPlan{
			Phase1:         fmt.Sprintf("Launch awareness creatives for %s across core channels", input.BrandName),
			Phase2:         "Iterate on messaging with A/B tests and double down on winning hooks",
			Phase3:         fmt.Sprintf("Scale the best performers toward the %s objective", input.Objective),
			SuccessMetrics: defaultSlice(insights.ImplementationPlan.SuccessMetrics, []string{"Engagement rate", "Conversion rate", "Brand recall"}),
		},
		CompetitiveAdvantage: domain.BlueprintAdvantage{
			DifferentiationPoints: defaultSlice(insights.CreativeGuidelines.Messaging, []string{"Distinct value proposition", "Audience-first creative"}),
			MarketPositioning: fmt.Sprintf("%s: the %s choice for %s",
				input.BrandName, strings.ToLower(input.Industry), input.TargetAudience),
			ExpectedOutcomes: []string{"Improved engagement", "Stronger brand differentiation", "Higher conversion potential"},
		},
	}

	g.logger.WithContext(ctx).WithField("brand", input.BrandName).Info("Template-filled campaign blueprint")
	return blueprint, nil
}

// OfflineChatResponder is the deterministic keyword-lookup assistant used
// when no chat credential is configured.
type OfflineChatResponder struct{}

func NewOfflineChatResponder() *OfflineChatResponder {
	return &OfflineChatResponder{}
}

var marketingKeywords = []string{
	"campaign", "advertising", "marketing", "ads", "social media", "roi",
	"conversion", "lead", "brand", "strategy", "analytics", "performance",
}

func (r *OfflineChatResponder) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var question string
	userTurns := 0
	for _, m := range messages {
		if m.Role == domain.RoleUser {
			question = m.Content
			userTurns++
		}
	}

	if userTurns <= 1 {
		return greetingReply, nil
	}

	lower := strings.ToLower(question)
	for _, kw := range marketingKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Sprintf(marketingReply, question), nil
		}
	}
	return redirectReply, nil
}

const greetingReply = `Hello! I'm AdVision AI, your professional Marketing, Advertising, and Campaign Product Manager expert.

I specialize in digital marketing strategy, social media advertising, performance marketing, and campaign optimization.

To help you most effectively, could you tell me:
- What type of business or industry you're working with?
- What specific marketing challenge or goal you'd like to discuss?
- Your current marketing budget and timeline?`

const marketingReply = `Here are some professional marketing insights for: %q

Strategic recommendations:
- Define your target audience with specific demographics and psychographics
- Set clear KPIs and measurement frameworks
- Test multiple creative variations and messaging approaches

Key metrics to track:
- CTR (Click-Through Rate): industry avg 1-3%%
- Conversion Rate: 2-5%% for most industries
- ROAS (Return on Ad Spend): target 3:1 or higher

Would you like me to dive deeper into any specific aspect of your marketing strategy?`

const redirectReply = `I'm AdVision AI, your Marketing, Advertising, and Campaign Product Manager expert!

I specialize in digital marketing strategy, social media advertising optimization, performance marketing, brand positioning, and marketing analytics.

Could you share more about your marketing goals or challenges?`

func contentSeed(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

func pick(options []string, seed uint64) string {
	return options[seed%uint64(len(options))]
}

func firstSentence(text string) string {
	for _, sep := range []string{". ", "! ", "? "} {
		if idx := strings.Index(text, sep); idx > 0 {
			return text[:idx+1]
		}
	}
	if len(text) > 80 {
		return text[:80]
	}
	return text
}

func mostCommon(analysis []domain.AdAnalysis, field func(domain.AdAnalysis) string) string {
	counts := make(map[string]int)
	best := "General"
	bestCount := 0
	for _, a := range analysis {
		v := field(a)
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func defaultSlice(value, fallback []string) []string {
	if len(value) > 0 {
		return value
	}
	return fallback
}
