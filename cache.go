package bwproc

import (
	"fmt"
	"log/slog"
)

// Cache stores transformed pixels of one source image so that a pass that
// maps many output pixels to the same source pixel transforms it only once.
//
// Cached values depend on the parameters, not on the mapping. Process
// compares the parameter fingerprint with the one the cache was filled with
// and resets the cache when they differ; Reset may also be called directly.
// A Cache must not be shared between concurrent calls.
type Cache struct {
	Computed []bool
	Values   []Sample // three per pixel

	fingerprint uint64
	bound       bool
}

// NewCache allocates a cache for a source of the given pixel count.
func NewCache(pixels int) *Cache {
	return &Cache{
		Computed: make([]bool, pixels),
		Values:   make([]Sample, pixels*3),
	}
}

// Len returns the number of source pixels the cache covers.
func (c *Cache) Len() int {
	return len(c.Computed)
}

// Reset marks every pixel as not computed.
func (c *Cache) Reset() {
	clear(c.Computed)
	c.bound = false
}

func (c *Cache) check(pixels int) error {
	if c == nil {
		return fmt.Errorf("%w: nil cache", ErrInvalidDimensions)
	}
	if len(c.Computed) != pixels || len(c.Values) != pixels*3 {
		return fmt.Errorf("%w: cache holds %d pixels and %d values, source has %d pixels",
			ErrInvalidDimensions, len(c.Computed), len(c.Values), pixels)
	}
	return nil
}

// bind resets the cache if it was filled under a different fingerprint.
func (c *Cache) bind(fingerprint uint64) {
	if c.bound && c.fingerprint == fingerprint {
		return
	}
	if c.bound {
		Logger().Debug("parameters changed, resetting pixel cache", slog.Int("pixels", c.Len()))
	}
	c.Reset()
	c.fingerprint = fingerprint
	c.bound = true
}
