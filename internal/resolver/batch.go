package resolver

import (
	"context"

	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

// DefaultBatchKeywords drive a batch run when the caller supplies none.
var DefaultBatchKeywords = []string{
	"pothole", "garbage", "water supply", "sewage", "streetlight", "power cut",
}

// BatchReport tallies one batch run.
type BatchReport struct {
	Fetched    int              `json:"fetched"`
	Processed  int              `json:"processed"`
	Registered int              `json:"registered"`
	Rejected   int              `json:"rejected"`
	Duplicates int              `json:"duplicates"`
	Failed     int              `json:"failed"`
	Outcomes   []domain.Outcome `json:"outcomes"`
}

// PostFetcher pulls raw posts for one search keyword from a source group.
type PostFetcher interface {
	Search(ctx context.Context, keyword, sourceGroup string, limit int) ([]domain.RawPost, error)
}

// ProcessBatch fetches posts for each keyword and runs them through the
// pipeline one at a time. Sequential on purpose: the geocoder and the post
// source both rate-limit, and a single slow batch is better than a banned
// client. Per-post failures are tallied, not fatal; only context
// cancellation aborts the run.
func (r *Resolver) ProcessBatch(ctx context.Context, fetcher PostFetcher, keywords []string, sourceGroup string, limit int) (*BatchReport, error) {
	report := &BatchReport{Outcomes: []domain.Outcome{}}
	seen := make(map[string]bool)

	for _, keyword := range keywords {
		posts, err := fetcher.Search(ctx, keyword, sourceGroup, limit)
		if err != nil {
			r.log.Warn("batch fetch failed",
				logger.String("keyword", keyword),
				logger.Error(err),
			)
			continue
		}

		for _, post := range posts {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			// Keywords overlap; skip posts already handled this run.
			if post.SourceID != "" && seen[post.SourceID] {
				continue
			}
			seen[post.SourceID] = true
			report.Fetched++

			outcome, err := r.Process(ctx, post, domain.CitizenContact{})
			if err != nil {
				report.Failed++
				r.log.Warn("batch post failed",
					logger.String("source_id", post.SourceID),
					logger.Error(err),
				)
				continue
			}

			report.Processed++
			switch {
			case outcome.Registered:
				report.Registered++
			case outcome.Duplicate:
				report.Duplicates++
			case outcome.Rejected:
				report.Rejected++
			}
			report.Outcomes = append(report.Outcomes, *outcome)
		}
	}

	if r.telemetry != nil {
		r.telemetry.RecordBatchSize(report.Processed)
	}
	return report, nil
}
