package bwproc

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Params are the effect parameters supplied by the host.
type Params struct {
	// Channel mix weights, typically summing to about 1.
	Red, Green, Blue float64

	// Layers are applied in order to the mixed gray value.
	Layers []ContrastLayer

	// TintHue is in degrees, TintAmount in [0,1]; amount 0 disables tinting.
	TintHue    float64
	TintAmount float64

	// Vignetting is a curve from SinusoidalVignetting, nil disables it.
	Vignetting Curve

	// Grain is a buffer from UniformGrain or GaussianGrain, nil disables it.
	Grain GrainBuffer
}

// DefaultParams returns a plain mix with no layers, tint, vignetting or grain.
func DefaultParams() Params {
	return Params{
		Red:   0.5,
		Green: 0.3,
		Blue:  0.2,
	}
}

// Options controls a processing call.
type Options struct {
	// Rand draws per-row grain strides. Nil uses a randomly seeded generator.
	Rand *rand.Rand
	// OnStats is called after a cached pass.
	OnStats func(st Stats)
}

func applyOptions(opts []func(o *Options)) Options {
	var opt Options
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	return opt
}

// validate checks p against a source of the given pixel count.
func (p *Params) validate(pixels int) error {
	if p == nil {
		return fmt.Errorf("%w: nil params", ErrInvalidParameter)
	}
	for _, w := range [...]float64{p.Red, p.Green, p.Blue, p.TintHue, p.TintAmount} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: non-finite mix or tint value", ErrInvalidParameter)
		}
	}
	for i, l := range p.Layers {
		if err := checkCurve(l.Curve, fmt.Sprintf("layer %d curve", i)); err != nil {
			return fmt.Errorf("%w: %v", ErrLayerMismatch, err)
		}
		if l.Mask != nil && len(l.Mask) != pixels {
			return fmt.Errorf("%w: layer %d mask has %d entries, source has %d pixels", ErrLayerMismatch, i, len(l.Mask), pixels)
		}
	}
	if p.Vignetting != nil {
		if err := checkCurve(p.Vignetting, "vignetting curve"); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
	}
	if p.Grain != nil {
		if err := checkGrain(p.Grain); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint hashes every parameter that influences a pixel value. Two
// parameter sets with equal fingerprints produce equal cached pixels.
func (p *Params) Fingerprint() uint64 {
	d := xxhash.New()
	var b [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		_, _ = d.Write(b[:])
	}
	writeSamples := func(tag byte, s []Sample) {
		binary.LittleEndian.PutUint64(b[:], uint64(len(s)))
		_, _ = d.Write([]byte{tag})
		_, _ = d.Write(b[:])
		buf := make([]byte, 2*len(s))
		for i, v := range s {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
		}
		_, _ = d.Write(buf)
	}

	writeFloat(p.Red)
	writeFloat(p.Green)
	writeFloat(p.Blue)
	writeFloat(p.TintHue)
	writeFloat(p.TintAmount)
	for _, l := range p.Layers {
		writeSamples('c', l.Curve)
		if l.Mask == nil {
			_, _ = d.Write([]byte{'n'})
		} else {
			writeSamples('m', l.Mask)
		}
	}
	writeSamples('v', p.Vignetting)
	writeSamples('g', p.Grain)

	return d.Sum64()
}

// TranslateLayers converts a flat curve, mask, curve, mask, ... array into
// contrast layers. A nil mask entry means the layer applies uniformly.
func TranslateLayers(pairs [][]Sample) ([]ContrastLayer, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: odd layer array length %d", ErrLayerMismatch, len(pairs))
	}
	layers := make([]ContrastLayer, len(pairs)/2)
	for i := range layers {
		layers[i] = ContrastLayer{
			Curve: Curve(pairs[i*2+0]),
			Mask:  pairs[i*2+1],
		}
		if err := checkCurve(layers[i].Curve, fmt.Sprintf("layer %d curve", i)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLayerMismatch, err)
		}
	}
	return layers, nil
}
