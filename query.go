package bwproc

import "fmt"

// QueryPixel evaluates the pipeline for the source pixel at (x, y) and
// returns the output together with the mixed gray value and the value after
// each contrast layer. Vignetting and grain are not applied; otherwise the
// output equals what Process produces for that pixel.
func QueryPixel(src *Image16, x, y int, p *Params) (*PixelQuery, error) {
	if err := src.check(); err != nil {
		return nil, err
	}
	if x < 0 || x >= src.Width || y < 0 || y >= src.Height {
		return nil, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, src.Width, src.Height)
	}
	if err := p.validate(src.Width * src.Height); err != nil {
		return nil, err
	}

	pixel := y*src.Width + x
	in := [3]Sample{src.Pix[pixel*3], src.Pix[pixel*3+1], src.Pix[pixel*3+2]}

	pr := probe{layered: make([]Sample, len(p.Layers))}
	tc := newTransformContext(p)
	out := tc.transform(in, pixel, SampleMax, sampleHalf, &pr)

	return &PixelQuery{
		Out:     out,
		Mixed:   pr.mixed,
		Layered: pr.layered,
	}, nil
}
