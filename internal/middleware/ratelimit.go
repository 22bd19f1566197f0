// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a sliding window. It sits in
// front of the owner-PIN JSON routes so a PIN cannot be guessed at speed.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
	stop   chan struct{}
}

// NewRateLimiter allows limit requests per window for each client and
// sweeps idle clients in the background until Stop is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go rl.sweepEvery(5 * time.Minute)
	return rl
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweepEvery(d time.Duration) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// recent drops timestamps older than the window. Caller holds mu.
func (rl *RateLimiter) recent(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	kept := rl.hits[ip][:0]
	for _, ts := range rl.hits[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// take records a request for ip. When the client is over the limit it
// returns false and how long until the oldest request leaves the window.
func (rl *RateLimiter) take(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	hits := rl.recent(ip, now)
	if len(hits) >= rl.limit {
		rl.hits[ip] = hits
		return false, hits[0].Add(rl.window).Sub(now)
	}
	rl.hits[ip] = append(hits, now)
	return true, 0
}

// sweep forgets clients with nothing left in the window.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip := range rl.hits {
		if hits := rl.recent(ip, now); len(hits) > 0 {
			rl.hits[ip] = hits
		} else {
			delete(rl.hits, ip)
		}
	}
}

// Middleware answers 429 with a Retry-After in whole seconds once a client
// is over its limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.take(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			fail(w, r, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the leftmost X-Forwarded-For entry, then X-Real-IP, then
// the connection address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
