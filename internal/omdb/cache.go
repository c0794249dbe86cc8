// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package omdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

const cacheKeyPrefix = "omdb:movie:"

// Cache stores successful lookups.
type Cache interface {
	Get(ctx context.Context, imdbID string) (*Movie, bool, error)
	Set(ctx context.Context, imdbID string, movie *Movie) error
	Close() error
}

// BadgerCache is a Cache on BadgerDB. Entries expire through Badger's
// native TTL, so there is no sweeper.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerCache opens (or creates) a cache at dir. An empty dir keeps the
// cache in memory.
func OpenBadgerCache(dir string, ttl time.Duration) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open OMDB cache: %w", err)
	}

	logging.Info().
		Str("path", dir).
		Bool("in_memory", dir == "").
		Dur("ttl", ttl).
		Msg("OMDB cache opened")
	return &BadgerCache{db: db, ttl: ttl}, nil
}

// Get returns the cached movie, or ok=false on a miss or expired entry.
func (c *BadgerCache) Get(_ context.Context, imdbID string) (*Movie, bool, error) {
	var movie Movie
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKeyPrefix + imdbID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &movie)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read OMDB cache: %w", err)
	}
	return &movie, true, nil
}

// Set stores movie with the cache TTL. A zero TTL stores without expiry.
func (c *BadgerCache) Set(_ context.Context, imdbID string, movie *Movie) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(cacheKeyPrefix+imdbID), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Close releases the database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
