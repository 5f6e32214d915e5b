package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fixedClock returns a limiter clock the test can advance.
func fixedClock(l *Limiter) func(time.Duration) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	l.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	return func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	fixedClock(limiter)

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/templates", "GET")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 10-(i+1) {
			t.Errorf("Request %d: expected %d remaining, got %d", i+1, 10-(i+1), info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/templates", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected a positive retry-after when denied")
	}
	if !info.ResetTime.After(limiter.now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Refill(t *testing.T) {
	// 60 per minute refills one token per second
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()
	advance := fixedClock(limiter)

	for i := 0; i < 60; i++ {
		limiter.Allow("c", "/x", "GET")
	}
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Fatal("Expected bucket to be empty")
	}

	advance(time.Second)
	if allowed, _ := limiter.Allow("c", "/x", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/x", "GET"); !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("10.0.0.2", "/x", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("c", "/x", "GET"); !allowed {
			t.Fatal("Expected all requests to be allowed when disabled")
		}
	}
}

func TestLimiter_ExportSharedAcrossSessions(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()
	fixedClock(limiter)

	// Burst of 3 exports, spread over different session ids
	for i := 0; i < 3; i++ {
		path := fmt.Sprintf("/sessions/s%d/export", i)
		if allowed, _ := limiter.Allow("c", path, "POST"); !allowed {
			t.Fatalf("Expected export %d to be allowed", i+1)
		}
	}
	if allowed, info := limiter.Allow("c", "/sessions/other/export", "POST"); allowed {
		t.Error("Expected 4th export to be denied regardless of session id")
	} else if info.Limit != 20 {
		t.Errorf("Expected export limit 20, got %d", info.Limit)
	}

	// Another client is unaffected
	if allowed, _ := limiter.Allow("d", "/sessions/s0/export", "POST"); !allowed {
		t.Error("Expected another client's export to be allowed")
	}
	// Reads fall through to the default limit
	if allowed, _ := limiter.Allow("c", "/sessions/s0/preview", "GET"); !allowed {
		t.Error("Expected preview to be allowed")
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, info := limiter.Allow("c", "/health", "GET"); !allowed || info.Limit != 0 {
			t.Fatal("Expected health checks to be unlimited")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()
	fixedClock(limiter)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("c", "/x", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	advance := fixedClock(limiter)

	limiter.Allow("old", "/x", "GET")
	advance(2 * time.Hour)
	limiter.Allow("new", "/x", "GET")

	if removed := limiter.cleanupBuckets(); removed != 1 {
		t.Errorf("Expected 1 bucket removed, got %d", removed)
	}
	limiter.mu.Lock()
	_, oldExists := limiter.buckets["old:GET:/x"]
	_, newExists := limiter.buckets["new:GET:/x"]
	limiter.mu.Unlock()
	if oldExists || !newExists {
		t.Errorf("Expected only the idle bucket to be removed (old=%v new=%v)", oldExists, newExists)
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, CleanupInterval: time.Minute})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if allowed, info := limiter.Allow("c", "/x", "GET"); !allowed || info.Limit != 1000 {
		t.Errorf("Expected default config with limit 1000, got allowed=%v limit=%d", allowed, info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path   string
		method string
		want   string
	}{
		{"/sessions/abc/export", "POST", "/sessions/*/export"},
		{"/sessions/abc/export/stream", "POST", "/sessions/*/export/stream"},
		{"/sessions", "POST", "/sessions"},
		{"/sessions/abc/data", "PUT", "/sessions/"},
		{"/sessions/abc/template", "POST", "/sessions/"},
		{"/health", "GET", "/health"},
		{"/sessions/abc/preview", "GET", ""},
		{"/templates", "GET", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Expected no match, got %q", got.Path)
				}
				return
			}
			if got == nil || got.Path != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, got)
			}
		})
	}
}

func TestParseIPList(t *testing.T) {
	got := parseIPList(" 10.0.0.1, ,10.0.0.2")
	if len(got) != 2 || !got["10.0.0.1"] || !got["10.0.0.2"] {
		t.Errorf("Unexpected parse result: %v", got)
	}
	if len(parseIPList("")) != 0 {
		t.Error("Expected empty list")
	}
}
