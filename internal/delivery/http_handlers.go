package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"advision/internal/domain"
	"advision/internal/usecase"
	"advision/pkg/logger"
	"advision/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	selection *usecase.SelectionService
	analysis  *usecase.AnalysisService
	insights  *usecase.InsightService
	campaigns *usecase.CampaignService
	chat      *usecase.ChatService
	catalog   domain.AdCatalog
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewHTTPHandlers(
	selection *usecase.SelectionService,
	analysis *usecase.AnalysisService,
	insights *usecase.InsightService,
	campaigns *usecase.CampaignService,
	chat *usecase.ChatService,
	catalog domain.AdCatalog,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		selection: selection,
		analysis:  analysis,
		insights:  insights,
		campaigns: campaigns,
		chat:      chat,
		catalog:   catalog,
		logger:    logger,
		metrics:   metrics,
	}
}

// respondError maps the stage error taxonomy to HTTP status codes. The
// mapping is exhaustive over the domain sentinels; anything else is a 500.
func (h *HTTPHandlers) respondError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	status := http.StatusInternalServerError
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptySelection):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAdNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSnapshotMissing),
		errors.Is(err, domain.ErrSnapshotSchema),
		errors.Is(err, domain.ErrStaleInput):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStageBusy):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrStageTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrMalformedResponse):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
	}

	c.JSON(status, gin.H{
		"error":      http.StatusText(status),
		"message":    err.Error(),
		"request_id": requestID,
	})
}

// FetchAds searches the competitor ad catalog
func (h *HTTPHandlers) FetchAds(c *gin.Context) {
	filter, err := parseAdFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ads, err := h.catalog.Search(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ads":        ads,
		"count":      len(ads),
		"request_id": c.GetString("request_id"),
	})
}

// FilterOptions returns the distinct filterable values in the catalog
func (h *HTTPHandlers) FilterOptions(c *gin.Context) {
	options, err := h.catalog.FilterOptions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business_types": options.BusinessTypes,
		"categories":     options.Categories,
		"countries":      options.Countries,
		"request_id":     c.GetString("request_id"),
	})
}

// GetSelection returns the current working selection
func (h *HTTPHandlers) GetSelection(c *gin.Context) {
	selected, err := h.selection.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected":   selected,
		"count":      len(selected),
		"request_id": c.GetString("request_id"),
	})
}

type toggleRequest struct {
	AdID string `json:"ad_id" binding:"required"`
}

// ToggleSelection adds or removes one ad from the selection
func (h *HTTPHandlers) ToggleSelection(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, &domain.ValidationError{Field: "ad_id"})
		return
	}

	selected, err := h.selection.Toggle(c.Request.Context(), req.AdID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected":   selected,
		"count":      len(selected),
		"request_id": c.GetString("request_id"),
	})
}

// CommitSelection confirms the selection as the analysis input
func (h *HTTPHandlers) CommitSelection(c *gin.Context) {
	selected, err := h.selection.Commit(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Selection committed",
		"selected":   selected,
		"count":      len(selected),
		"request_id": c.GetString("request_id"),
	})
}

// ClearSelection discards the working selection
func (h *HTTPHandlers) ClearSelection(c *gin.Context) {
	if err := h.selection.Clear(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Selection cleared",
		"request_id": c.GetString("request_id"),
	})
}

// AnalyzeAds runs the per-ad analysis stage over the committed selection
func (h *HTTPHandlers) AnalyzeAds(c *gin.Context) {
	results, err := h.analysis.Run(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":   results,
		"aggregates": domain.Aggregate(results),
		"request_id": c.GetString("request_id"),
	})
}

// GetAnalysis returns the persisted analysis set
func (h *HTTPHandlers) GetAnalysis(c *gin.Context) {
	results, meta, err := h.analysis.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":   results,
		"aggregates": domain.Aggregate(results),
		"saved_at":   meta.SavedAt,
		"sequence":   meta.Sequence,
		"request_id": c.GetString("request_id"),
	})
}

// HandoffAnalysis copies the analysis set to the insights input
func (h *HTTPHandlers) HandoffAnalysis(c *gin.Context) {
	meta, err := h.analysis.Handoff(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Analysis handed off",
		"sequence":   meta.Sequence,
		"request_id": c.GetString("request_id"),
	})
}

// GenerateInsights runs the cross-ad synthesis stage
func (h *HTTPHandlers) GenerateInsights(c *gin.Context) {
	insights, err := h.insights.Run(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights":   insights,
		"request_id": c.GetString("request_id"),
	})
}

// GetInsights returns the persisted insights
func (h *HTTPHandlers) GetInsights(c *gin.Context) {
	insights, meta, err := h.insights.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights":   insights,
		"saved_at":   meta.SavedAt,
		"sequence":   meta.Sequence,
		"request_id": c.GetString("request_id"),
	})
}

// CampaignSummary returns the wizard's opening read-back view
func (h *HTTPHandlers) CampaignSummary(c *gin.Context) {
	summary, err := h.campaigns.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"request_id": c.GetString("request_id"),
	})
}

// GenerateStrategy synthesizes a campaign blueprint from wizard input
func (h *HTTPHandlers) GenerateStrategy(c *gin.Context) {
	var input domain.CampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, &domain.ValidationError{Field: "body"})
		return
	}

	blueprint, err := h.campaigns.GenerateBlueprint(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blueprint":  blueprint,
		"request_id": c.GetString("request_id"),
	})
}

type completeRequest struct {
	Input     domain.CampaignInput     `json:"input"`
	Blueprint domain.CampaignBlueprint `json:"blueprint"`
}

// GenerateImage runs the asset step and appends the finished campaign to
// the dashboard
func (h *HTTPHandlers) GenerateImage(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, &domain.ValidationError{Field: "body"})
		return
	}

	summary, err := h.campaigns.Complete(c.Request.Context(), req.Input, req.Blueprint)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaign":   summary,
		"request_id": c.GetString("request_id"),
	})
}

// ListCampaigns returns the dashboard list, newest first
func (h *HTTPHandlers) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaigns.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns":  campaigns,
		"count":      len(campaigns),
		"request_id": c.GetString("request_id"),
	})
}

type chatRequest struct {
	Message     string               `json:"message" binding:"required"`
	History     []domain.ChatMessage `json:"history"`
	UserContext domain.UserContext   `json:"user_context"`
}

// Chat answers a marketing assistant turn
func (h *HTTPHandlers) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, &domain.ValidationError{Field: "message"})
		return
	}

	reply, userCtx, err := h.chat.Chat(c.Request.Context(), req.Message, req.History, req.UserContext)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":        reply,
		"user_context": userCtx,
		"request_id":   c.GetString("request_id"),
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "advision",
		"version":   "1.0.0",
	})
}

// parseAdFilter parses catalog search query parameters
func parseAdFilter(c *gin.Context) (domain.AdFilter, error) {
	filter := domain.AdFilter{
		Query: c.Query("q"),
	}

	if countries := c.Query("country"); countries != "" {
		filter.Countries = strings.Split(countries, ",")
	}

	numeric := []struct {
		param string
		dst   *float64
	}{
		{"spend_min", &filter.MinSpend},
		{"spend_max", &filter.MaxSpend},
	}
	for _, n := range numeric {
		if v := c.Query(n.param); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return domain.AdFilter{}, &domain.ValidationError{Field: n.param}
			}
			*n.dst = parsed
		}
	}

	ints := []struct {
		param string
		dst   *int
	}{
		{"impressions_min", &filter.MinImpressions},
		{"impressions_max", &filter.MaxImpressions},
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	}
	for _, n := range ints {
		if v := c.Query(n.param); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return domain.AdFilter{}, &domain.ValidationError{Field: n.param}
			}
			*n.dst = parsed
		}
	}

	return filter, nil
}
