package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"advision/internal/domain"
	"advision/pkg/logger"
	"advision/pkg/metrics"
)

// ChatService answers marketing assistant questions. It maintains a
// lightweight user profile extracted from the conversation and folds it
// into the system prompt on every turn.
type ChatService struct {
	responder    domain.ChatResponder
	stageTimeout time.Duration
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewChatService(
	responder domain.ChatResponder,
	stageTimeout time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ChatService {
	return &ChatService{
		responder:    responder,
		stageTimeout: stageTimeout,
		logger:       logger,
		metrics:      metrics,
	}
}

// Chat answers question against the prior history. The returned context
// is the caller's context merged with anything extracted from this turn;
// the caller passes it back on the next turn.
func (s *ChatService) Chat(ctx context.Context, question string, history []domain.ChatMessage, userCtx domain.UserContext) (string, domain.UserContext, error) {
	start := time.Now()

	question = strings.TrimSpace(question)
	if question == "" {
		return "", userCtx, &domain.ValidationError{Field: "message"}
	}

	merged := userCtx.Merge(ExtractContext(question))

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt(merged)})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: question})

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	reply, err := s.responder.Chat(stageCtx, messages)
	if err != nil {
		status := "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
			err = fmt.Errorf("%w: chat exceeded %s", domain.ErrStageTimeout, s.stageTimeout)
		}
		s.metrics.RecordStageRun("chat", status, time.Since(start))
		s.logger.WithContext(ctx).WithError(err).Error("Chat turn failed")
		return "", merged, err
	}

	s.metrics.RecordStageRun("chat", "success", time.Since(start))
	return reply, merged, nil
}

var budgetPattern = regexp.MustCompile(`(?i)\$(\d+(?:,\d{3})*(?:k|m)?)`)

var (
	businessKeywords = []string{"ecommerce", "saas", "b2b", "b2c", "startup", "agency", "consulting", "retail", "healthcare", "finance", "education", "real estate"}
	timelineKeywords = []string{"immediately", "asap", "next week", "next month", "quarter", "year"}
	goalKeywords     = []string{"awareness", "conversions", "leads", "sales", "traffic", "engagement", "brand", "roi"}
)

// ExtractContext mines a chat message for business facts worth keeping
// across turns.
func ExtractContext(message string) domain.UserContext {
	lower := strings.ToLower(message)
	var uc domain.UserContext

	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			uc.BusinessType = kw
			break
		}
	}

	if m := budgetPattern.FindStringSubmatch(message); len(m) > 1 {
		uc.Budget = "$" + m[1]
	}

	for _, kw := range timelineKeywords {
		if strings.Contains(lower, kw) {
			uc.Timeline = kw
			break
		}
	}

	for _, kw := range goalKeywords {
		if strings.Contains(lower, kw) {
			uc.Goals = append(uc.Goals, kw)
		}
	}

	return uc
}

func systemPrompt(uc domain.UserContext) string {
	var b strings.Builder
	b.WriteString(`You are AdVision AI, a professional Marketing, Advertising, and Campaign Product Manager expert.

You specialize in digital marketing strategy, social media advertising, performance marketing, brand positioning, campaign optimization, and marketing analytics.

Give specific, actionable advice with concrete metrics and benchmarks where relevant. Keep answers focused on marketing and advertising topics; politely redirect anything else.`)

	var facts []string
	if uc.BusinessType != "" {
		facts = append(facts, "business type: "+uc.BusinessType)
	}
	if uc.Budget != "" {
		facts = append(facts, "budget: "+uc.Budget)
	}
	if uc.Timeline != "" {
		facts = append(facts, "timeline: "+uc.Timeline)
	}
	if len(uc.Goals) > 0 {
		facts = append(facts, "goals: "+strings.Join(uc.Goals, ", "))
	}
	if len(facts) > 0 {
		b.WriteString("\n\nWhat you know about this user so far: ")
		b.WriteString(strings.Join(facts, "; "))
		b.WriteString(". Reference it when it helps.")
	}

	return b.String()
}
