// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package ratelimit provides a fixed-window request counter for go-chi/httprate.
//
// httprate's built-in counter aligns windows to wall-clock boundaries and
// blends in the previous window (sliding estimate). FixedWindowCounter instead
// opens a window at each key's first request and reports nothing for the
// previous window, so "N requests per window from first hit" holds exactly.
package ratelimit

import (
	"sync"
	"time"

	"github.com/go-chi/httprate"
)

var _ httprate.LimitCounter = (*FixedWindowCounter)(nil)

type entry struct {
	count   int
	resetAt time.Time
}

// FixedWindowCounter implements httprate.LimitCounter. Entries whose window
// has elapsed are dropped lazily during Get and IncrementBy; there is no
// background goroutine.
//
// A counter belongs to exactly one limiter: httprate calls Config with that
// limiter's window length.
type FixedWindowCounter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewFixedWindowCounter returns an empty counter. The window is set by
// httprate through Config.
func NewFixedWindowCounter() *FixedWindowCounter {
	return &FixedWindowCounter{
		entries: make(map[string]*entry),
		window:  time.Minute,
		now:     time.Now,
	}
}

// Config implements httprate.LimitCounter.
func (c *FixedWindowCounter) Config(_ int, windowLength time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if windowLength > 0 {
		c.window = windowLength
	}
}

// Increment implements httprate.LimitCounter.
func (c *FixedWindowCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

// IncrementBy implements httprate.LimitCounter. The window argument is
// ignored; the key's own window is used.
func (c *FixedWindowCounter) IncrementBy(key string, _ time.Time, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	e, ok := c.entries[key]
	if !ok || !now.Before(e.resetAt) {
		c.entries[key] = &entry{count: amount, resetAt: now.Add(c.window)}
		return nil
	}
	e.count += amount
	return nil
}

// Get implements httprate.LimitCounter. The previous-window count is always
// zero.
func (c *FixedWindowCounter) Get(key string, _, _ time.Time) (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	e, ok := c.entries[key]
	if !ok || !now.Before(e.resetAt) {
		return 0, 0, nil
	}
	return e.count, 0, nil
}

// ResetAt returns when the key's current window closes.
func (c *FixedWindowCounter) ResetAt(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.resetAt) {
		return time.Time{}, false
	}
	return e.resetAt, true
}

// Len reports the number of tracked keys, expired or not.
func (c *FixedWindowCounter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweepLocked removes expired entries at most once per window.
func (c *FixedWindowCounter) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) < c.window {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if !now.Before(e.resetAt) {
			delete(c.entries, k)
		}
	}
}
