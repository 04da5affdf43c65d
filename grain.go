package bwproc

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// NewRand returns a PCG-backed generator seeded with seed, for reproducible
// grain buffers and row strides.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randOrSeeded(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return NewRand(rand.Uint64())
}

// UniformGrain builds a grain buffer of values uniformly distributed in
// [0.5-max, 0.5+max]. Max must be within [0,0.5]. A nil rng uses a randomly
// seeded generator.
func UniformGrain(max float64, rng *rand.Rand) (GrainBuffer, error) {
	if !(max >= 0 && max <= 0.5) {
		return nil, fmt.Errorf("%w: uniform grain max %v outside [0,0.5]", ErrInvalidParameter, max)
	}
	rng = randOrSeeded(rng)

	buf := make(GrainBuffer, GrainBufferSize)
	for i := range buf {
		buf[i] = FromFloat(rng.Float64()*max*2.0 + (0.5 - max))
	}
	return buf, nil
}

// GaussianGrain builds a grain buffer of normally distributed values with the
// given variance around 0.5, clamped to [0,1]. A nil rng uses a randomly
// seeded generator.
func GaussianGrain(variance float64, rng *rand.Rand) (GrainBuffer, error) {
	if !(variance >= 0) || math.IsInf(variance, 1) {
		return nil, fmt.Errorf("%w: gaussian grain variance %v", ErrInvalidParameter, variance)
	}
	rng = randOrSeeded(rng)
	sigma := math.Sqrt(variance)

	buf := make(GrainBuffer, GrainBufferSize)
	for i := range buf {
		x := gaussUnit(rng) * sigma
		if x < -1 {
			x = -1
		} else if x > 1 {
			x = 1
		}
		buf[i] = FromFloat(x*0.5 + 0.5)
	}
	return buf, nil
}

// gaussUnit draws a standard normal value with the polar Box-Muller method.
func gaussUnit(rng *rand.Rand) float64 {
	var x1, x2, w float64
	for {
		x1 = rng.Float64()*2.0 - 1.0
		x2 = rng.Float64()*2.0 - 1.0
		w = x1*x1 + x2*x2
		if w < 1.0 && w > 0 {
			break
		}
	}
	return x1 * math.Sqrt(-2.0*math.Log(w)/w)
}

func checkGrain(g GrainBuffer) error {
	if len(g) != GrainBufferSize {
		return fmt.Errorf("%w: grain buffer has %d entries, want %d", ErrInvalidParameter, len(g), GrainBufferSize)
	}
	return nil
}

// randSource draws row strides. *rand.Rand implements it.
type randSource interface {
	IntN(n int) int
}

// grainWalker reads a grain buffer with a stride redrawn once per row.
type grainWalker struct {
	buf   GrainBuffer
	rng   randSource
	index int
	step  int
}

func newGrainWalker(buf GrainBuffer, rng randSource) *grainWalker {
	return &grainWalker{buf: buf, rng: rng, step: 1}
}

// nextRow picks the stride for the following row. The read position carries
// over from the previous row.
func (g *grainWalker) nextRow() {
	if g.buf == nil {
		return
	}
	g.step = g.rng.IntN(grainIncrementMax) + 1
}

func (g *grainWalker) next() Sample {
	if g.buf == nil {
		return sampleHalf
	}
	v := g.buf[g.index]
	g.index += g.step
	if g.index >= GrainBufferSize {
		g.index -= GrainBufferSize
	}
	return v
}
