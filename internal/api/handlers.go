// Package api exposes the taxonomy mapping service over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/casemark/taxonomy-mapper/internal/classifier"
	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
	"github.com/casemark/taxonomy-mapper/internal/processor"
	"github.com/casemark/taxonomy-mapper/internal/storage"
	"github.com/casemark/taxonomy-mapper/internal/taxonomy"
	"github.com/casemark/taxonomy-mapper/internal/telemetry"
)

// Handler handles HTTP requests for the taxonomy mapper API.
type Handler struct {
	classifier     *classifier.Classifier
	batchProcessor *processor.BatchProcessor
	store          *taxonomy.Store
	history        *storage.HistoryRepository
	historyLimit   int
	telemetry      *telemetry.Provider
	logger         logging.Logger
}

// NewHandler creates a new API handler. historyLimit caps the recent
// history listing.
func NewHandler(
	classifierInstance *classifier.Classifier,
	batchProcessor *processor.BatchProcessor,
	store *taxonomy.Store,
	history *storage.HistoryRepository,
	historyLimit int,
	tel *telemetry.Provider,
	logger logging.Logger,
) *Handler {
	return &Handler{
		classifier:     classifierInstance,
		batchProcessor: batchProcessor,
		store:          store,
		history:        history,
		historyLimit:   historyLimit,
		telemetry:      tel,
		logger:         logger,
	}
}

// ClassifyRequest represents a single classification request.
type ClassifyRequest struct {
	ContentItem *domain.ContentItem `json:"content_item" binding:"required"`
}

// ClassifyResponse represents a classification response.
type ClassifyResponse struct {
	Result *domain.ClassificationResult `json:"result"`
	Error  string                       `json:"error,omitempty"`
}

// BatchClassifyRequest represents a batch classification request.
type BatchClassifyRequest struct {
	ContentItems []*domain.ContentItem `json:"content_items" binding:"required,min=1,max=100"`
}

// BatchClassifyResponse represents a batch classification response.
type BatchClassifyResponse struct {
	Results []*processor.Result `json:"results"`
	Total   int                 `json:"total"`
	Success int                 `json:"success"`
	Failed  int                 `json:"failed"`
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid classification request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ContentItem.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_item.id is required"})
		return
	}

	result, err := h.classifier.Classify(c.Request.Context(), req.ContentItem)
	if err != nil {
		h.telemetry.RecordClassificationFailure(c.Request.Context(), "classify_error")
		h.logger.Error("classification failed",
			"content_item_id", req.ContentItem.ID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ClassifyResponse{Error: err.Error()})
		return
	}

	h.persist(c, result)

	c.JSON(http.StatusOK, ClassifyResponse{Result: result})
}

// ClassifyBatch handles POST /api/v1/classify/batch.
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch classification request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.telemetry.RecordBatchSize(len(req.ContentItems))

	results, err := h.batchProcessor.Process(c.Request.Context(), req.ContentItems)
	if err != nil {
		h.logger.Error("batch classification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	success := 0
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		success++
		h.persist(c, result.Classification)
	}

	c.JSON(http.StatusOK, BatchClassifyResponse{
		Results: results,
		Total:   len(results),
		Success: success,
		Failed:  len(results) - success,
	})
}

// GetClassificationResult handles GET /api/v1/classify/:content_id.
func (h *Handler) GetClassificationResult(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_id is required"})
		return
	}

	result, err := h.history.GetByContentID(c.Request.Context(), contentID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no classification found for content item"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load classification history",
			"content_item_id", contentID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load classification"})
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{Result: result})
}

// ListCategories handles GET /api/v1/taxonomy/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	parents := h.store.ParentCategories()

	response := make([]CategoryResponse, len(parents))
	for i, category := range parents {
		response[i] = toCategoryResponse(category)
	}

	c.JSON(http.StatusOK, CategoriesListResponse{
		Categories: response,
		Total:      len(response),
	})
}

// GetSubcategories handles GET /api/v1/taxonomy/categories/:id/subcategories.
func (h *Handler) GetSubcategories(c *gin.Context) {
	parentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	parent, ok := h.store.Get(parentID)
	if !ok || !parent.IsParent() {
		c.JSON(http.StatusNotFound, gin.H{"error": "parent category not found"})
		return
	}

	subcategories := h.store.Subcategories(parentID)
	response := make([]CategoryResponse, len(subcategories))
	for i, category := range subcategories {
		response[i] = toCategoryResponse(category)
	}

	c.JSON(http.StatusOK, CategoriesListResponse{
		Categories: response,
		Total:      len(response),
	})
}

// ListHistory handles GET /api/v1/history.
func (h *Handler) ListHistory(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= h.historyLimit {
			limit = n
		}
	}

	entries, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list classification history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	c.JSON(http.StatusOK, HistoryListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.history.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load classification stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		History:          stats,
		TaxonomySize:     h.store.Len(),
		ParentCategories: h.store.ParentCount(),
	})
}

// HealthCheck handles GET /healthz.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"service":           "taxonomy-mapper",
		"version":           h.classifier.Version(),
		"taxonomy_size":     h.store.Len(),
		"parent_categories": h.store.ParentCount(),
	})
}

// persist writes a result to history. Failures are logged and counted
// but never fail the request.
func (h *Handler) persist(c *gin.Context, result *domain.ClassificationResult) {
	if err := h.history.Create(c.Request.Context(), result); err != nil {
		h.telemetry.RecordHistoryWriteFailure()
		h.logger.Warn("failed to persist classification result",
			"content_item_id", result.ContentItemID,
			"error", err,
		)
	}
}
