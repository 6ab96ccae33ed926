package colour

import "sync"

// HSLCache memoises RGB to HSL conversions. It is safe for concurrent use.
// The zero value is ready to use.
type HSLCache struct {
	mu      sync.RWMutex
	entries map[RGB]HSL
	hits    int
	misses  int
}

// NewHSLCache returns an empty cache.
func NewHSLCache() *HSLCache {
	return &HSLCache{entries: make(map[RGB]HSL)}
}

// Get returns the HSL view of rgb, computing and storing it on a miss.
func (c *HSLCache) Get(rgb RGB) HSL {
	c.mu.RLock()
	hsl, ok := c.entries[rgb]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return hsl
	}

	hsl = RGBToHSL(rgb)
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[RGB]HSL)
	}
	c.entries[rgb] = hsl
	c.misses++
	c.mu.Unlock()
	return hsl
}

// Len returns the number of cached entries.
func (c *HSLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *HSLCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Converter performs conversions through an optional HSL cache.
// A nil Cache disables memoisation.
type Converter struct {
	Cache *HSLCache
}

// NewConverter returns a Converter backed by cache.
func NewConverter(cache *HSLCache) *Converter {
	return &Converter{Cache: cache}
}

// HSL returns the HSL view of rgb.
func (c *Converter) HSL(rgb RGB) HSL {
	if c == nil || c.Cache == nil {
		return RGBToHSL(rgb)
	}
	return c.Cache.Get(rgb)
}

// HexToHSL parses hex and returns its HSL view.
func (c *Converter) HexToHSL(hex string) (HSL, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return c.HSL(rgb), nil
}
