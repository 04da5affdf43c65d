package bwproc

// transformContext holds everything the per-pixel transform reads. It is
// built once per call and not modified while pixels are processed.
type transformContext struct {
	redF, greenF, blueF int64
	layers              []ContrastLayer
	tint                TintCurve
}

// probe records intermediate values for QueryPixel.
type probe struct {
	mixed   Sample
	layered []Sample
}

func newTransformContext(p *Params) *transformContext {
	return &transformContext{
		redF:   int64(p.Red * rgbMult),
		greenF: int64(p.Green * rgbMult),
		blueF:  int64(p.Blue * rgbMult),
		layers: p.Layers,
		tint:   NewTintCurve(p.TintHue, p.TintAmount),
	}
}

// mix converts an RGB pixel to gray using the channel weights.
func (tc *transformContext) mix(in [3]Sample) Sample {
	sgray := int64(in[0])*tc.redF + int64(in[1])*tc.greenF + int64(in[2])*tc.blueF
	if sgray < 0 {
		sgray = 0
	}
	return clampSample(sgray >> rgbShift)
}

// transform runs one source pixel through mixing, the contrast layers,
// vignetting, grain and tinting. Pixel indexes the layer masks. Pass
// vignette SampleMax and grain sampleHalf to disable those stages.
func (tc *transformContext) transform(in [3]Sample, pixel int, vignette, grain Sample, pr *probe) [3]Sample {
	gray := tc.mix(in)
	if pr != nil {
		pr.mixed = gray
	}

	contrasted := gray
	for i, l := range tc.layers {
		result := l.Curve[contrasted>>CurveShift]
		if l.Mask == nil {
			contrasted = result
		} else {
			mask := l.Mask[pixel]
			contrasted = Mul(result, mask) + Mul(contrasted, SampleMax-mask)
		}
		if pr != nil {
			pr.layered[i] = contrasted
		}
	}

	contrasted = Mul(contrasted, vignette)
	grained := addGrain(contrasted, grain)

	return tc.tint.At(grained)
}

// pixelFunc is the shape of transform as seen by the processing loops.
type pixelFunc func(in [3]Sample, pixel int, vignette, grain Sample) [3]Sample

func (tc *transformContext) pixelFunc() pixelFunc {
	return func(in [3]Sample, pixel int, vignette, grain Sample) [3]Sample {
		return tc.transform(in, pixel, vignette, grain, nil)
	}
}
