package reddit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/civicsetu/resolver/internal/reddit"
)

func TestTokenCache_Get_CachesUntilExpiry(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := reddit.NewTokenCacheWithClock(func() time.Time { return clock })

	refreshes := 0
	refresh := func() (string, time.Duration, error) {
		refreshes++
		return "tok-1", time.Hour, nil
	}

	token, err := cache.Get(refresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-1" || refreshes != 1 {
		t.Fatalf("token = %q, refreshes = %d", token, refreshes)
	}

	// Well within the TTL: no second refresh.
	clock = clock.Add(30 * time.Minute)
	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", refreshes)
	}

	// Past the TTL minus slack: refresh again.
	clock = clock.Add(30 * time.Minute)
	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", refreshes)
	}
}

func TestTokenCache_Get_RefreshesInsideSlackWindow(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := reddit.NewTokenCacheWithClock(func() time.Time { return clock })

	refreshes := 0
	refresh := func() (string, time.Duration, error) {
		refreshes++
		return "tok", time.Minute, nil
	}

	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 40s into a 60s TTL is inside the 30s slack window.
	clock = clock.Add(40 * time.Second)
	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", refreshes)
	}
}

func TestTokenCache_Invalidate_ForcesRefresh(t *testing.T) {
	cache := reddit.NewTokenCache()

	refreshes := 0
	refresh := func() (string, time.Duration, error) {
		refreshes++
		return "tok", time.Hour, nil
	}

	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Get(refresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", refreshes)
	}
}

func TestTokenCache_Get_RefreshErrorNotCached(t *testing.T) {
	cache := reddit.NewTokenCache()
	wantErr := errors.New("upstream down")

	if _, err := cache.Get(func() (string, time.Duration, error) {
		return "", 0, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	// A failed refresh must not poison the cache.
	token, err := cache.Get(func() (string, time.Duration, error) {
		return "tok", time.Hour, nil
	})
	if err != nil || token != "tok" {
		t.Fatalf("token = %q, err = %v", token, err)
	}
}
