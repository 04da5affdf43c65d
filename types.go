package bwproc

// Sample is a 16-bit fixed-point value in [0,1] scaled by 65535.
type Sample uint16

// Curve is a CurveSize-entry lookup table indexed by a Sample shifted right
// by CurveShift.
type Curve []Sample

// At returns the curve value for s.
func (c Curve) At(s Sample) Sample {
	return c[s>>CurveShift]
}

// TintCurve maps a quantized luma level to an RGB triple. It holds
// 3*CurveSize Samples, interleaved per level.
type TintCurve []Sample

// At returns the RGB triple for s.
func (t TintCurve) At(s Sample) [3]Sample {
	i := int(s>>CurveShift) * 3
	return [3]Sample{t[i], t[i+1], t[i+2]}
}

// GrainBuffer is a GrainBufferSize-entry noise table. Mid-gray (32767) is
// neutral.
type GrainBuffer []Sample

// ContrastLayer applies Curve to the running gray value. When Mask is not nil
// it holds one blend weight per source pixel.
type ContrastLayer struct {
	Curve Curve
	Mask  []Sample
}

// Image8 is an interleaved 8-bit RGB buffer with explicit strides. Channels
// beyond the first three of a pixel (e.g. alpha) are left alone.
type Image8 struct {
	Width       int
	Height      int
	PixelStride int // bytes between horizontally adjacent pixels
	RowStride   int // bytes between vertically adjacent pixels
	Pix         []uint8
}

// Image16 is a packed RGB buffer of Samples, three per pixel, no padding.
type Image16 struct {
	Width  int
	Height int
	Pix    []Sample
}

// PixelQuery is the result of QueryPixel.
type PixelQuery struct {
	Out     [3]Sample
	Mixed   Sample   // gray value after channel mixing, before any layer
	Layered []Sample // gray value after each contrast layer
}

// Stats describes a cached pass.
type Stats struct {
	Computed int // source pixels transformed during the pass
	Reused   int // output pixels served from the cache
}
