package colour

import (
	"sync"
	"testing"
)

func TestHSLCache(t *testing.T) {
	cache := NewHSLCache()
	red := RGB{R: 255}

	first := cache.Get(red)
	second := cache.Get(red)
	if first != second {
		t.Errorf("cached value changed: %v != %v", first, second)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestHSLCacheZeroValue(t *testing.T) {
	var cache HSLCache
	if got := cache.Get(RGB{B: 255}); got.H != 240 {
		t.Errorf("Get() hue = %v, want 240", got.H)
	}
}

func TestHSLCacheConcurrent(t *testing.T) {
	cache := NewHSLCache()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for v := 0; v < 64; v++ {
				cache.Get(RGB{R: uint8(v), G: uint8(i)})
			}
		}(i)
	}
	wg.Wait()
	if cache.Len() != 8*64 {
		t.Errorf("Len() = %d, want %d", cache.Len(), 8*64)
	}
}

func TestConverterIsolation(t *testing.T) {
	a := NewConverter(NewHSLCache())
	b := NewConverter(NewHSLCache())

	a.HSL(RGB{R: 10})
	a.HSL(RGB{R: 20})
	b.HSL(RGB{R: 10})

	if a.Cache.Len() != 2 || b.Cache.Len() != 1 {
		t.Errorf("cache sizes = %d, %d, want 2, 1", a.Cache.Len(), b.Cache.Len())
	}

	var uncached *Converter
	if got := uncached.HSL(RGB{G: 255}); got.H != 120 {
		t.Errorf("nil converter HSL hue = %v, want 120", got.H)
	}
}
