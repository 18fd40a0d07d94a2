/*
File    : gomixvm/domain/ratelimit/ratelimit.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ratelimit realizes the out-of-scope IP rate limiter (spec.md
// §1) as a token bucket keyed by client-IP string, grounded on the
// teacher's std/common.go map-keyed registry idiom (the package-name ->
// *Package lookup in RegisterPackage), generalized here to a
// mutex-guarded map of per-key buckets.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/akashmaji946/gomixvm/value"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter is a token-bucket rate limiter keyed by an arbitrary string
// (typically a client IP).
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	refillPS float64 // tokens added per second
	now      func() time.Time
}

// New returns a Limiter allowing burstCapacity requests immediately and
// refilling at refillPerSecond tokens/second thereafter.
func New(burstCapacity, refillPerSecond float64) *Limiter {
	return &Limiter{
		buckets:  make(map[string]*bucket),
		capacity: burstCapacity,
		refillPS: refillPerSecond,
		now:      time.Now,
	}
}

// Allow reports whether key may proceed, consuming one token if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity - 1, lastRefill: now}
		l.buckets[key] = b
		return true
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * l.refillPS
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Natives returns rate_allow for registration.
func (l *Limiter) Natives() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"rate_allow": l.rateAllow,
	}
}

func (l *Limiter) rateAllow(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("rate_allow expects 1 argument (ip)")
	}
	return value.Bool(l.Allow(args[0].AsString())), nil
}
