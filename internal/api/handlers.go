package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
	"github.com/civicsetu/resolver/internal/reddit"
	"github.com/civicsetu/resolver/internal/resolver"
)

// ComplaintReader is the read-side persistence surface the API needs.
type ComplaintReader interface {
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Complaint, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler handles HTTP requests for the resolver API
type Handler struct {
	pipeline *resolver.Resolver
	fetcher  resolver.PostFetcher
	reader   ComplaintReader
	db       Pinger
	cfg      *config.Config
	log      logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	pipeline *resolver.Resolver,
	fetcher resolver.PostFetcher,
	reader ComplaintReader,
	db Pinger,
	cfg *config.Config,
	log logger.Logger,
) *Handler {
	return &Handler{
		pipeline: pipeline,
		fetcher:  fetcher,
		reader:   reader,
		db:       db,
		cfg:      cfg,
		log:      log,
	}
}

// Fetch handles GET /api/v1/fetch. It previews posts for a keyword without
// registering anything. ?source= names the subreddit group; ?multi=true is
// an alias for the multi-subreddit group.
func (h *Handler) Fetch(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "keyword query parameter is required"})
		return
	}

	sourceGroup := strings.TrimSpace(c.Query("source"))
	if sourceGroup == "" {
		sourceGroup = reddit.SourceGroupCity
	}
	if c.Query("multi") == "true" {
		sourceGroup = reddit.SourceGroupMulti
	}
	limit := parseLimit(c, h.cfg.Service.FetchLimit, h.cfg.Service.MaxListLimit)

	posts, err := h.fetcher.Search(c.Request.Context(), keyword, sourceGroup, limit)
	if err != nil {
		h.log.Error("fetch failed", logger.String("keyword", keyword), logger.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, FetchResponse{Posts: posts, Total: len(posts)})
}

// Register handles POST /api/v1/register. A civic post becomes a persisted,
// notified complaint (201). Non-civic text is rejected (422) and an already
// seen source post conflicts (409).
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request", logger.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	post := domain.RawPost{
		SourceID:  req.SourceID,
		Title:     req.Title,
		Body:      req.Body,
		Author:    req.Author,
		Permalink: req.SourceLink,
	}

	outcome, err := h.pipeline.Process(c.Request.Context(), post, req.Citizen)
	if err != nil {
		writeError(c, err)
		return
	}

	switch {
	case outcome.Rejected:
		c.JSON(http.StatusUnprocessableEntity, outcome)
	case outcome.Duplicate:
		c.JSON(http.StatusConflict, outcome)
	default:
		h.log.Info("complaint registered via api",
			logger.String("complaint_id", outcome.ComplaintID),
		)
		c.JSON(http.StatusCreated, outcome)
	}
}

// ListAll handles GET /api/v1/all. Most recent complaints first; ?limit= is
// clamped to the configured maximum.
func (h *Handler) ListAll(c *gin.Context) {
	limit := parseLimit(c, h.cfg.Service.ListLimit, h.cfg.Service.MaxListLimit)

	complaints, err := h.reader.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("list complaints failed", logger.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ComplaintsListResponse{Complaints: complaints, Total: len(complaints)})
}

// GetComplaint handles GET /api/v1/complaints/:id.
func (h *Handler) GetComplaint(c *gin.Context) {
	id := c.Param("id")

	complaint, err := h.reader.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// BatchProcess handles POST /api/v1/batch-process. Fetches posts for each
// keyword and runs the full pipeline over them sequentially.
func (h *Handler) BatchProcess(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid batch request", logger.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if len(req.Keywords) == 0 {
		req.Keywords = resolver.DefaultBatchKeywords
	}
	if req.SourceGroup == "" {
		req.SourceGroup = reddit.SourceGroupCity
	}
	if req.Limit < 1 || req.Limit > h.cfg.Service.MaxListLimit {
		req.Limit = h.cfg.Service.FetchLimit
	}

	h.log.Info("batch run started",
		logger.Int("keywords", len(req.Keywords)),
		logger.String("source_group", req.SourceGroup),
	)

	report, err := h.pipeline.ProcessBatch(c.Request.Context(), h.fetcher, req.Keywords, req.SourceGroup, req.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.Info("batch run finished",
		logger.Int("processed", report.Processed),
		logger.Int("registered", report.Registered),
		logger.Int("rejected", report.Rejected),
		logger.Int("duplicates", report.Duplicates),
	)

	c.JSON(http.StatusOK, report)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.cfg.Service.Name,
		"version": h.cfg.Service.Version,
	})
}

// ReadyCheck handles GET /ready. Ready means the database answers a ping.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "no database"})
		return
	}
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
