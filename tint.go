package bwproc

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type tintKey struct {
	hue    float64
	amount float64
}

const tintCacheLimit = 64

var (
	tintCache      sync.Map
	tintCacheCount atomic.Int32
)

// NewTintCurve builds the luma-to-RGB table for a tint of the given hue (in
// degrees) and amount in [0,1]. Each level is the HSV color with saturation
// amount and value equal to the level, blended with the neutral gray of that
// level at weight amount. Amount 0 yields a neutral gray ramp.
//
// The returned table is shared and must not be modified.
func NewTintCurve(hue, amount float64) TintCurve {
	if math.IsNaN(hue) || math.IsInf(hue, 0) {
		hue = 0
	}
	if math.IsNaN(amount) {
		amount = 0
	}
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	amount = clamp01(amount)

	key := tintKey{hue: hue, amount: amount}
	if cached, ok := tintCache.Load(key); ok {
		return cached.(TintCurve)
	}

	Logger().Debug("building tint curve", slog.Float64("hue", hue), slog.Float64("amount", amount))

	curve := make(TintCurve, CurveSize*3)
	for i := 0; i < CurveSize; i++ {
		l := curvePos(i)
		c := colorful.Hsv(hue, amount, l)
		base := i * 3
		curve[base+0] = FromFloat(c.R*amount + l*(1-amount))
		curve[base+1] = FromFloat(c.G*amount + l*(1-amount))
		curve[base+2] = FromFloat(c.B*amount + l*(1-amount))
	}

	// The memo is emptied once it would exceed tintCacheLimit curves.
	if tintCacheCount.Add(1) > tintCacheLimit {
		tintCache.Range(func(k, _ any) bool {
			tintCache.Delete(k)
			return true
		})
		tintCacheCount.Store(1)
	}
	actual, _ := tintCache.LoadOrStore(key, curve)
	return actual.(TintCurve)
}
