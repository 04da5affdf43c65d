package bwproc

import (
	"fmt"
	"log/slog"
	"sync"
)

var samplePool = sync.Pool{
	New: func() any {
		buf := make([]Sample, 0)
		return &buf
	},
}

func getSamples(n int) []Sample {
	bufPtr := samplePool.Get().(*[]Sample)
	buf := *bufPtr
	if cap(buf) < n {
		return make([]Sample, n)
	}
	return buf[:n]
}

func putSamples(buf []Sample) {
	if buf == nil {
		return
	}
	buf = buf[:0]
	samplePool.Put(&buf)
}

func (img *Image16) check() error {
	if img == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidDimensions)
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*3 {
		return fmt.Errorf("%w: source %dx%d with %d samples", ErrInvalidDimensions, img.Width, img.Height, len(img.Pix))
	}
	return nil
}

func (img *Image8) check(name string) error {
	if img == nil {
		return fmt.Errorf("%w: nil %s", ErrInvalidDimensions, name)
	}
	if img.Width <= 0 || img.Height <= 0 || img.PixelStride < 3 || img.RowStride < 3 {
		return fmt.Errorf("%w: %s %dx%d, pixel stride %d, row stride %d",
			ErrInvalidDimensions, name, img.Width, img.Height, img.PixelStride, img.RowStride)
	}
	last := (img.Height-1)*img.RowStride + (img.Width-1)*img.PixelStride + 3
	if len(img.Pix) < last {
		return fmt.Errorf("%w: %s needs %d bytes, has %d", ErrInvalidDimensions, name, last, len(img.Pix))
	}
	return nil
}

// Process renders src through m into dst using the cache to transform every
// source pixel at most once. Dst receives packed RGB Samples of the upright
// rotated output, m.Width pixels per row, and must hold at least
// m.Width*m.Height*3 Samples.
//
// Vignetting is positioned by source row and column. Grain advances once per
// transformed source pixel with a stride redrawn for every output row.
func Process(dst []Sample, src *Image16, m *Mapping, c *Cache, p *Params, opts ...func(o *Options)) error {
	opt := applyOptions(opts)
	if err := src.check(); err != nil {
		return err
	}
	pixels := src.Width * src.Height
	if err := m.Validate(src.Width, src.Height); err != nil {
		return err
	}
	if err := c.check(pixels); err != nil {
		return err
	}
	if err := p.validate(pixels); err != nil {
		return err
	}
	if need := m.Width * m.Height * 3; len(dst) < need {
		return fmt.Errorf("%w: output holds %d samples, need %d", ErrInvalidDimensions, len(dst), need)
	}

	Logger().Debug("cached pass",
		slog.Int("src_width", src.Width), slog.Int("src_height", src.Height),
		slog.Int("out_width", m.Width), slog.Int("out_height", m.Height),
		slog.Int("layers", len(p.Layers)))

	c.bind(p.Fingerprint())

	tc := newTransformContext(p)
	st := processCached(dst, src, m, c, p, randOrSeeded(opt.Rand), tc.pixelFunc())

	if opt.OnStats != nil {
		opt.OnStats(st)
	}
	return nil
}

// processCached is the loop behind Process. Inputs are already validated.
func processCached(dst []Sample, src *Image16, m *Mapping, c *Cache, p *Params, rng randSource, fn pixelFunc) Stats {
	var (
		st       Stats
		vsquareX []Sample
		vsquareY []Sample
	)
	if p.Vignetting != nil {
		vsquareX = vignettingSquares(src.Width)
		vsquareY = vignettingSquares(src.Height)
	}
	grain := newGrainWalker(p.Grain, rng)

	for row, sy := range m.Rows {
		grain.nextRow()
		for col, sx := range m.Cols {
			pixel := sy*src.Width + sx
			slot := c.Values[pixel*3 : pixel*3+3 : pixel*3+3]

			if c.Computed[pixel] {
				st.Reused++
			} else {
				c.Computed[pixel] = true
				st.Computed++

				vignette := Sample(SampleMax)
				if p.Vignetting != nil {
					vignette = p.Vignetting[(vsquareY[sy]+vsquareX[sx])>>CurveShift]
				}
				in := [3]Sample{src.Pix[pixel*3], src.Pix[pixel*3+1], src.Pix[pixel*3+2]}
				out := fn(in, pixel, vignette, grain.next())
				copy(slot, out[:])
			}

			off := m.outputOffset(row, col) * 3
			copy(dst[off:off+3], slot)
		}
	}
	return st
}

// Process8 runs Process and narrows the result to 8 bits per channel into
// dst, which must be m.Width x m.Height. Channels are truncated, not rounded.
func Process8(dst *Image8, src *Image16, m *Mapping, c *Cache, p *Params, opts ...func(o *Options)) error {
	if err := dst.check("output"); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: nil mapping", ErrInvalidDimensions)
	}
	if dst.Width != m.Width || dst.Height != m.Height {
		return fmt.Errorf("%w: output is %dx%d, mapping produces %dx%d", ErrInvalidDimensions, dst.Width, dst.Height, m.Width, m.Height)
	}

	tmp := getSamples(m.Width * m.Height * 3)
	defer putSamples(tmp)

	if err := Process(tmp, src, m, c, p, opts...); err != nil {
		return err
	}

	for y := 0; y < m.Height; y++ {
		row := dst.Pix[y*dst.RowStride:]
		in := tmp[y*m.Width*3:]
		for x := 0; x < m.Width; x++ {
			o := x * dst.PixelStride
			row[o+0] = uint8(in[x*3+0] >> 8)
			row[o+1] = uint8(in[x*3+1] >> 8)
			row[o+2] = uint8(in[x*3+2] >> 8)
		}
	}
	return nil
}
