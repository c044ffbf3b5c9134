package reddit_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/civicsetu/resolver/internal/config"
	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
	"github.com/civicsetu/resolver/internal/reddit"
)

func searchListing(t *testing.T, w http.ResponseWriter, posts ...map[string]any) {
	t.Helper()
	children := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		children = append(children, map[string]any{"data": p})
	}
	if err := json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{"children": children},
	}); err != nil {
		t.Fatalf("encode listing: %v", err)
	}
}

func newRedditTestServer(t *testing.T, search http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		if user, _, ok := r.BasicAuth(); !ok || user != "client-id" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":3600}`))
	})
	mux.HandleFunc("/r/", search)
	return httptest.NewServer(mux)
}

func newRedditClient(srvURL string) *reddit.Client {
	return reddit.NewClient(config.RedditConfig{
		BaseURL:      srvURL,
		AuthURL:      srvURL + "/api/v1/access_token",
		ClientID:     "client-id",
		ClientSecret: "secret",
		UserAgent:    "resolver-test/1.0",
		Timeout:      5 * time.Second,
	}, reddit.NewTokenCache(), logger.NewNop())
}

func TestClient_Search_ReturnsPostsByScore(t *testing.T) {
	srv := newRedditTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/r/delhi/search") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "pothole" {
			t.Errorf("q = %q", got)
		}
		searchListing(t, w,
			map[string]any{
				"id": "low", "title": "Small pothole", "author": "a",
				"permalink": "/r/delhi/comments/low", "subreddit": "delhi",
				"score": 3, "created_utc": 1756700000.0,
			},
			map[string]any{
				"id": "high", "title": "Huge pothole", "author": "b",
				"permalink": "/r/delhi/comments/high", "subreddit": "delhi",
				"score": 42, "created_utc": 1756710000.0,
			},
		)
	})
	defer srv.Close()

	posts, err := newRedditClient(srv.URL).Search(context.Background(), "pothole", reddit.SourceGroupCity, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].SourceID != "high" || posts[1].SourceID != "low" {
		t.Errorf("order = %s, %s; want score descending", posts[0].SourceID, posts[1].SourceID)
	}
	if posts[0].Permalink != "https://www.reddit.com/r/delhi/comments/high" {
		t.Errorf("permalink = %q", posts[0].Permalink)
	}
}

func TestClient_Search_MultiGroupJoinsSubreddits(t *testing.T) {
	srv := newRedditTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/r/delhi+india+IndiaSpeaks/search") {
			t.Errorf("path = %q", r.URL.Path)
		}
		searchListing(t, w)
	})
	defer srv.Close()

	posts, err := newRedditClient(srv.URL).Search(context.Background(), "garbage", reddit.SourceGroupMulti, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts = %d, want 0", len(posts))
	}
}

func TestClient_Search_RateLimited(t *testing.T) {
	srv := newRedditTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := newRedditClient(srv.URL).Search(context.Background(), "pothole", reddit.SourceGroupCity, 10)

	var rateLimited *domain.RateLimitedError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("error = %v, want RateLimitedError", err)
	}
	if rateLimited.RetryAfter != 2*time.Minute {
		t.Errorf("retry after = %s, want 2m", rateLimited.RetryAfter)
	}
}

func TestClient_Search_TokenEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newRedditClient(srv.URL).Search(context.Background(), "pothole", reddit.SourceGroupCity, 10)

	var unreachable *domain.UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("error = %v, want UnreachableError", err)
	}
}
