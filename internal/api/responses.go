package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicsetu/resolver/internal/domain"
)

// RegisterRequest is the payload for registering a complaint directly.
type RegisterRequest struct {
	Title      string                `json:"title" binding:"required"`
	Body       string                `json:"body"`
	Author     string                `json:"author"`
	SourceID   string                `json:"source_id"`
	SourceLink string                `json:"source_link"`
	Citizen    domain.CitizenContact `json:"citizen"`
}

// BatchRequest is the payload for a batch fetch-and-process run.
type BatchRequest struct {
	Keywords    []string `json:"keywords"`
	SourceGroup string   `json:"source_group"`
	Limit       int      `json:"limit"`
}

// FetchResponse wraps a raw post preview.
type FetchResponse struct {
	Posts []domain.RawPost `json:"posts"`
	Total int              `json:"total"`
}

// ComplaintsListResponse wraps a complaint listing.
type ComplaintsListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int                `json:"total"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after_seconds,omitempty"`
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var (
		validation  *domain.ValidationError
		rateLimited *domain.RateLimitedError
		unreachable *domain.UnreachableError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, errorResponse{Error: "complaint already registered"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "complaint not found"})
	case errors.As(err, &rateLimited):
		c.JSON(http.StatusTooManyRequests, errorResponse{
			Error:      rateLimited.Error(),
			RetryAfter: int(rateLimited.RetryAfter.Seconds()),
		})
	case errors.As(err, &unreachable):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: unreachable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// parseLimit reads a ?limit= query parameter, bounded to [1, maxLimit].
// Missing or malformed values fall back to the default.
func parseLimit(c *gin.Context, fallback, maxLimit int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
