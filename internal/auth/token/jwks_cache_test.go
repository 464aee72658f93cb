package token

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestCache(t *testing.T, fetches *atomic.Int32, kid string) (*jwksCache, *rsa.PrivateKey) {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	jwks := buildJWKS(t, &privKey.PublicKey, kid)
	client := &http.Client{
		Transport: roundTripperFunc(func(_ *http.Request) (*http.Response, error) {
			fetches.Add(1)
			return jsonResponse(http.StatusOK, jwks), nil
		}),
	}
	return newJWKSCache("https://jwks.test/keys", client, 5*time.Minute, 2*time.Second), privKey
}

func TestJWKSCache_ConcurrentMissSingleFetch(t *testing.T) {
	var fetches atomic.Int32
	cache, _ := newTestCache(t, &fetches, "kid-1")

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.getKey(context.Background(), "kid-1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("fetches = %d, want 1", got)
	}
}

func TestJWKSCache_FreshHitSkipsFetch(t *testing.T) {
	var fetches atomic.Int32
	cache, _ := newTestCache(t, &fetches, "kid-1")

	if _, err := cache.getKey(context.Background(), "kid-1"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := cache.getKey(context.Background(), "kid-1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("fetches = %d, want 1", got)
	}
}

func TestJWKSCache_TTLExpiryRefetches(t *testing.T) {
	var fetches atomic.Int32
	cache, _ := newTestCache(t, &fetches, "kid-1")
	now := time.Now()
	cache.now = func() time.Time { return now }
	cache.maxStale = 0

	if _, err := cache.getKey(context.Background(), "kid-1"); err != nil {
		t.Fatalf("first get: %v", err)
	}
	now = now.Add(cache.ttl + time.Second)
	if _, err := cache.getKey(context.Background(), "kid-1"); err != nil {
		t.Fatalf("post-expiry get: %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Fatalf("fetches = %d, want 2", got)
	}
}

func TestJWKSCache_MissingKid(t *testing.T) {
	var fetches atomic.Int32
	cache, _ := newTestCache(t, &fetches, "kid-1")
	if _, err := cache.getKey(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty kid")
	}
	if _, err := cache.getKey(context.Background(), "kid-absent"); err == nil {
		t.Fatal("expected error for unknown kid")
	}
}

func TestJWKSCache_FetchFailure(t *testing.T) {
	client := &http.Client{
		Transport: roundTripperFunc(func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusInternalServerError, `{}`), nil
		}),
	}
	cache := newJWKSCache("https://jwks.test/keys", client, time.Minute, time.Second)
	if _, err := cache.getKey(context.Background(), "kid-1"); err == nil {
		t.Fatal("expected fetch failure")
	}
}
