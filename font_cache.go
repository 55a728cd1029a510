package figtext

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// FontCache provides thread-safe caching of parsed fonts for long-running applications.
// The cache uses a simple LRU eviction policy when the maximum size is reached.
//
// Key Generation Strategy:
// - File paths: the absolute path, prefixed "path:"
// - Byte data: SHA256 of the content, prefixed "sha256:", so identical
// content shares one entry whatever its source
//
// Entries live in an insertion-ordered map; a hit re-inserts the entry so
// the oldest key is always the least recently used.
type FontCache struct {
	mu        sync.Mutex
	entries   *linkedhashmap.Map // key -> *cacheEntry
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	font *Font
	size int64 // approximate memory size in bytes
}

// Global default cache for convenience
var defaultCache = NewFontCache(100)

// NewFontCache creates a new font cache with the specified maximum number of fonts.
// A maxSize of 0 or negative means unlimited cache size.
func NewFontCache(maxSize int) *FontCache {
	return &FontCache{
		entries: linkedhashmap.New(),
		maxSize: maxSize,
	}
}

// LoadFontCached loads a font from the filesystem through the default cache.
func LoadFontCached(path string) (*Font, error) {
	return defaultCache.LoadFont(path)
}

// LoadFont loads a font from the filesystem with caching.
// This method is safe for concurrent use.
func (c *FontCache) LoadFont(path string) (*Font, error) {
	key := "path:" + path
	if abs, err := filepath.Abs(path); err == nil {
		key = "path:" + abs
	}

	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	c.put(key, font)
	return font, nil
}

// ParseFontCached parses font data through the default cache.
func ParseFontCached(data []byte) (*Font, error) {
	return defaultCache.ParseFont(data)
}

// ParseFont parses a font from byte data with caching.
// This method is safe for concurrent use.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, err
	}
	c.put(key, font)
	return font, nil
}

// get returns the cached font for key and marks it most recently used.
func (c *FontCache) get(key string) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, found := c.entries.Get(key)
	if !found {
		c.misses.Add(1)
		return nil
	}
	c.entries.Remove(key)
	c.entries.Put(key, v)
	c.hits.Add(1)
	return v.(*cacheEntry).font
}

// put adds a font, evicting the least recently used entry when full.
// A key that is already present keeps its first font.
func (c *FontCache) put(key string, font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.entries.Get(key); found {
		return
	}
	if c.maxSize > 0 && c.entries.Size() >= c.maxSize {
		c.evictLRU()
	}
	c.entries.Put(key, &cacheEntry{
		font: font,
		size: estimateFontSize(font),
	})
}

func (c *FontCache) evictLRU() {
	keys := c.entries.Keys()
	if len(keys) == 0 {
		return
	}
	c.entries.Remove(keys[0])
	c.evictions.Add(1)
}

// Clear removes all fonts from the cache.
// This method is safe for concurrent use.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Clear()
}

// Stats returns cache statistics.
// This method is safe for concurrent use.
func (c *FontCache) Stats() CacheStats {
	c.mu.Lock()
	size := c.entries.Size()
	var bytes int64
	for _, v := range c.entries.Values() {
		bytes += v.(*cacheEntry).size
	}
	c.mu.Unlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached fonts
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Estimated memory held by cached fonts
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize estimates the memory size of a font in bytes: row text,
// a slice header per glyph and a rough per-entry map overhead. It is only
// used for reporting.
func estimateFontSize(f *Font) int64 {
	if f == nil || f.font == nil {
		return 0
	}

	size := int64(128)
	for _, g := range f.font.Glyphs {
		for _, row := range g.Rows() {
			size += int64(len(row)) + 16
		}
		size += 24 + 40
	}
	for _, d := range f.font.Descriptions {
		size += int64(len(d))
	}
	for _, c := range f.Comments {
		size += int64(len(c))
	}
	return size
}

// SetDefaultCacheSize replaces the default cache with an empty one of maxSize.
// This should be called once at application startup.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewFontCache(maxSize)
}

// ClearDefaultCache clears the default font cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
