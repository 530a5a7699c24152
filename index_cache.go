package main

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedIndex is one built snapshot: the index, its diagnostics, the raw
// cells it was built from, a content fingerprint of those cells, and the
// build time. The engine itself stays pure; retention is this cache's job.
type CachedIndex struct {
	Index       *SongIndex
	Diagnostics IndexDiagnostics
	Cells       []RawCell
	Fingerprint string
	BuiltAt     time.Time
}

// corpusFingerprint hashes the cell snapshot so identical corpora map to
// identical fingerprints regardless of where they were loaded from.
func corpusFingerprint(cells []RawCell) string {
	h := sha256.New()
	for _, c := range cells {
		h.Write([]byte(c.SheetName))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(c.Column)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(c.Row)))
		h.Write([]byte{0, byte(c.Value.Kind)})
		h.Write([]byte(c.Value.Text))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IndexCache owns the current SongIndex snapshot. Readers get whatever
// snapshot is current; a refresh swaps in a whole new value, so in-flight
// operations keep reading the old one without ever seeing a partial update.
//
// Rebuilds on an unchanged corpus are safe to run redundantly (buildIndex
// is pure); the singleflight group only deduplicates their cost.
type IndexCache struct {
	loader func() ([]RawCell, error)
	ttl    time.Duration
	now    func() time.Time // injectable for tests

	flight singleflight.Group
	mu     sync.RWMutex
	cur    *CachedIndex
}

// NewIndexCache wires a cache to a corpus loader. ttl <= 0 disables
// time-based staleness; explicit Refresh/Invalidate still work.
func NewIndexCache(loader func() ([]RawCell, error), ttl time.Duration) *IndexCache {
	return &IndexCache{loader: loader, ttl: ttl, now: time.Now}
}

// Get returns the current snapshot, building or refreshing it first when
// missing or stale.
func (c *IndexCache) Get() (*CachedIndex, error) {
	c.mu.RLock()
	cur := c.cur
	c.mu.RUnlock()
	if cur != nil && !c.stale(cur) {
		return cur, nil
	}
	return c.rebuild()
}

// Current returns the snapshot without triggering a rebuild; nil if none
// has been built yet.
func (c *IndexCache) Current() *CachedIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Invalidate drops the current snapshot; the next Get rebuilds.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.cur = nil
	c.mu.Unlock()
}

// Refresh forces a rebuild regardless of staleness.
func (c *IndexCache) Refresh() (*CachedIndex, error) {
	c.Invalidate()
	return c.rebuild()
}

// RefreshIfStale rebuilds only when the snapshot is missing or older than
// the given ttl. It returns the snapshot in effect afterwards.
func (c *IndexCache) RefreshIfStale(ttl time.Duration) (*CachedIndex, error) {
	c.mu.RLock()
	cur := c.cur
	c.mu.RUnlock()
	if cur != nil && (ttl <= 0 || c.now().Sub(cur.BuiltAt) < ttl) {
		return cur, nil
	}
	return c.rebuild()
}

func (c *IndexCache) stale(ci *CachedIndex) bool {
	return c.ttl > 0 && c.now().Sub(ci.BuiltAt) >= c.ttl
}

func (c *IndexCache) rebuild() (*CachedIndex, error) {
	v, err, _ := c.flight.Do("rebuild", func() (interface{}, error) {
		cells, err := c.loader()
		if err != nil {
			return nil, err
		}
		fp := corpusFingerprint(cells)

		c.mu.RLock()
		cur := c.cur
		c.mu.RUnlock()
		if cur != nil && cur.Fingerprint == fp {
			// Unchanged corpus: keep the existing index, just bump BuiltAt.
			refreshed := *cur
			refreshed.BuiltAt = c.now()
			c.mu.Lock()
			c.cur = &refreshed
			c.mu.Unlock()
			return &refreshed, nil
		}

		idx, diag := buildIndex(cells)
		ci := &CachedIndex{
			Index:       idx,
			Diagnostics: diag,
			Cells:       cells,
			Fingerprint: fp,
			BuiltAt:     c.now(),
		}
		c.mu.Lock()
		c.cur = ci
		c.mu.Unlock()
		log.Printf("[INDEX] built snapshot %s: %d groups, %d clusters, %d skipped cells",
			fp[:12], len(idx.Keys()), len(idx.Clusters()), diag.SkippedCells)
		return ci, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CachedIndex), nil
}
