// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/narrowstacks/dorkroom-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	staleAfter      = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	clock    clockwork.Clock
	limiters map[string]*rateLimiterEntry
	limit    rate.Limit
	burst    int
	mu       syncutil.RWMutex
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows each IP perMinute requests a minute with bursts
// of up to burst requests. A nil clock means the real clock.
func NewIPRateLimiter(perMinute, burst int, clock clockwork.Clock) *IPRateLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &IPRateLimiter{
		clock:    clock,
		limiters: make(map[string]*rateLimiterEntry),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Len returns the number of tracked clients.
func (rl *IPRateLimiter) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

// Cleanup drops limiters of clients not seen for ten minutes.
func (rl *IPRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > staleAfter {
			delete(rl.limiters, ip)
			log.Debug().Str("ip", ip).Msg("removed stale rate limiter")
		}
	}
}

// StartCleanup runs Cleanup every five minutes until ctx is cancelled.
func (rl *IPRateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := rl.clock.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				rl.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ParseRemoteIP extracts the IP from a RemoteAddr, with or without a port.
func ParseRemoteIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return net.ParseIP(host)
}

// HTTPRateLimitMiddleware answers 429 once a client exceeds its limit.
func HTTPRateLimitMiddleware(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := r.RemoteAddr
			if ip := ParseRemoteIP(r.RemoteAddr); ip != nil {
				host = ip.String()
			}

			if !limiter.GetLimiter(host).Allow() {
				log.Warn().
					Str("ip", host).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("HTTP rate limit exceeded")

				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
