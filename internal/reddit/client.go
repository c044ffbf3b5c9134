// Package reddit implements the social-media fetch collaborator: searching
// recent posts from configured subreddit groups through the Reddit OAuth API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

/// Source groups: the city group is the default, the multi group widens the
// search to national subreddits that carry Delhi civic posts.
const (
	SourceGroupCity  = "city"
	SourceGroupMulti = "multi"
)

// Reddit permits ~60 requests/minute for script apps.
const requestSpacing = time.Second

var sourceGroups = map[string][]string{
	SourceGroupCity:  {"delhi"},
	SourceGroupMulti: {"delhi", "india", "IndiaSpeaks"},
}

// listing mirrors the relevant slice of Reddit's search response.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Author     string  `json:"author"`
				Permalink  string  `json:"permalink"`
				Subreddit  string  `json:"subreddit"`
				Score      int     `json:"score"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Client fetches posts from Reddit with client-credentials auth.
type Client struct {
	cfg     config.RedditConfig
	http    *http.Client
	tokens  *TokenCache
	limiter *rate.Limiter
	log     logger.Logger
}

// NewClient builds a fetch client sharing the given token cache.
func NewClient(cfg config.RedditConfig, tokens *TokenCache, log logger.Logger) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Every(requestSpacing), 1),
		log:     log,
	}
}

// Search returns up to limit posts matching keyword from the subreddit
// group, sorted by engagement score descending. Fails with RateLimitedError
// when Reddit throttles and UnreachableError on transport faults.
func (c *Client) Search(ctx context.Context, keyword, sourceGroup string, limit int) ([]domain.RawPost, error) {
	subreddits, ok := sourceGroups[sourceGroup]
	if !ok {
		subreddits = sourceGroups[SourceGroupCity]
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch pacing: %w", err)
	}

	token, err := c.tokens.Get(func() (string, time.Duration, error) {
		return c.fetchToken(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("acquire access token: %w", err)
	}

	query := url.Values{}
	query.Set("q", keyword)
	query.Set("restrict_sr", "1")
	query.Set("sort", "new")
	query.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/r/%s/search?%s", c.cfg.BaseURL, strings.Join(subreddits, "+"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.UnreachableError{Upstream: "reddit", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Token revoked server-side; next call refreshes.
		c.tokens.Invalidate()
		return nil, &domain.UnreachableError{Upstream: "reddit", Err: fmt.Errorf("unauthorized")}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &domain.RateLimitedError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.UnreachableError{
			Upstream: "reddit",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result listing
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.UnreachableError{Upstream: "reddit", Err: fmt.Errorf("decode listing: %w", err)}
	}

	posts := make([]domain.RawPost, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		data := child.Data
		posts = append(posts, domain.RawPost{
			SourceID:  data.ID,
			Title:     data.Title,
			Body:      data.Selftext,
			Author:    data.Author,
			Permalink: "https://www.reddit.com" + data.Permalink,
			Subreddit: data.Subreddit,
			Score:     data.Score,
			CreatedAt: time.Unix(int64(data.CreatedUTC), 0).UTC(),
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Score > posts[j].Score
	})

	c.log.Info("fetched posts",
		logger.String("keyword", keyword),
		logger.String("source_group", sourceGroup),
		logger.Int("count", len(posts)),
	)

	return posts, nil
}

// fetchToken performs the client-credentials exchange.
func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, &domain.UnreachableError{Upstream: "reddit", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, &domain.UnreachableError{
			Upstream: "reddit",
			Err:      fmt.Errorf("token endpoint status %d", resp.StatusCode),
		}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", 0, fmt.Errorf("empty access token in response")
	}

	return tok.AccessToken, time.Duration(tok.ExpiresIn) * time.Second, nil
}

// retryAfter reads the Retry-After hint, defaulting to a minute.
func retryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Minute
}
