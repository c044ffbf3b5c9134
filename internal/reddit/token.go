package reddit

import (
	"sync"
	"time"
)

// expirySlack refreshes the token slightly before the upstream deadline so
// an in-flight request never carries a just-expired credential.
const expirySlack = 30 * time.Second

// TokenCache holds the single cached OAuth credential and its expiry. It is
// an explicitly owned object injected into the client, not a package-level
// singleton: tests control the clock through now, and concurrent
// resolutions share one instance deliberately. Refresh is idempotent, so a
// race at worst causes one redundant refresh.
type TokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// NewTokenCache builds an empty cache using the wall clock.
func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// NewTokenCacheWithClock builds a cache with an injected clock for tests.
func NewTokenCacheWithClock(now func() time.Time) *TokenCache {
	return &TokenCache{now: now}
}

// Get returns the cached token if still valid, otherwise calls refresh and
// caches its result.
func (c *TokenCache) Get(refresh func() (string, time.Duration, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	token, ttl, err := refresh()
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiry = c.now().Add(ttl - expirySlack)
	return token, nil
}

// Invalidate drops the cached credential, forcing a refresh on next use.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiry = time.Time{}
}
