package bwproc

func newImage16(w, h int, fn func(x, y int) [3]Sample) *Image16 {
	img := &Image16{Width: w, Height: h, Pix: make([]Sample, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := fn(x, y)
			copy(img.Pix[(y*w+x)*3:], px[:])
		}
	}
	return img
}

func solidImage16(w, h int, v Sample) *Image16 {
	return newImage16(w, h, func(int, int) [3]Sample { return [3]Sample{v, v, v} })
}

func newPackedImage8(w, h int, fn func(x, y int) [3]uint8) *Image8 {
	img := &Image8{Width: w, Height: h, PixelStride: 3, RowStride: w * 3, Pix: make([]uint8, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := fn(x, y)
			copy(img.Pix[y*img.RowStride+x*3:], px[:])
		}
	}
	return img
}

func pixel16(pix []Sample, w, x, y int) [3]Sample {
	o := (y*w + x) * 3
	return [3]Sample{pix[o], pix[o+1], pix[o+2]}
}

func pixel8(img *Image8, x, y int) [3]uint8 {
	o := y*img.RowStride + x*img.PixelStride
	return [3]uint8{img.Pix[o], img.Pix[o+1], img.Pix[o+2]}
}

func absDiff(a, b Sample) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// countingStub replaces the transform and counts calls per source pixel.
type countingStub struct {
	calls map[int]int
}

func (s *countingStub) fn(in [3]Sample, pixel int, _, _ Sample) [3]Sample {
	s.calls[pixel]++
	return [3]Sample{in[0], Sample(pixel), Sample(s.calls[pixel])}
}
