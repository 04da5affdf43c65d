package bwproc

import (
	"fmt"
	"log/slog"
)

// ProcessDirect8 renders an 8-bit source straight into an 8-bit destination
// without a cache. Every mapped pixel is transformed, channels are widened to
// Samples by shifting left 8 bits and narrowed back by truncating shifts.
//
// Dst must be m.Width x m.Height. For a row-major mapping output pixel
// (row, col) is written at row*RowStride + col*PixelStride; otherwise at
// row*PixelStride + col*RowStride, which lays out the rotated image upright.
//
// Vignetting is positioned by output row and column. The grain stride is
// redrawn from the Options.Rand generator for every row while the read
// position carries over between rows.
func ProcessDirect8(dst, src *Image8, m *Mapping, p *Params, opts ...func(o *Options)) error {
	opt := applyOptions(opts)
	if err := src.check("source"); err != nil {
		return err
	}
	if err := dst.check("output"); err != nil {
		return err
	}
	if err := m.Validate(src.Width, src.Height); err != nil {
		return err
	}
	if dst.Width != m.Width || dst.Height != m.Height {
		return fmt.Errorf("%w: output is %dx%d, mapping produces %dx%d", ErrInvalidDimensions, dst.Width, dst.Height, m.Width, m.Height)
	}
	if err := p.validate(src.Width * src.Height); err != nil {
		return err
	}

	Logger().Debug("direct pass",
		slog.Int("src_width", src.Width), slog.Int("src_height", src.Height),
		slog.Int("out_width", m.Width), slog.Int("out_height", m.Height),
		slog.Bool("row_major", m.RowMajor), slog.Int("layers", len(p.Layers)))

	tc := newTransformContext(p)
	processDirect(dst, src, m, p, randOrSeeded(opt.Rand), tc.pixelFunc())
	return nil
}

func processDirect(dst, src *Image8, m *Mapping, p *Params, rng randSource, fn pixelFunc) {
	var vsquareX, vsquareY []Sample
	if p.Vignetting != nil {
		vsquareX = vignettingSquares(len(m.Cols))
		vsquareY = vignettingSquares(len(m.Rows))
	}
	grain := newGrainWalker(p.Grain, rng)

	// Output steps between pixels of one output row and between rows.
	colStep, rowStep := dst.PixelStride, dst.RowStride
	if !m.RowMajor {
		colStep, rowStep = dst.RowStride, dst.PixelStride
	}

	for row, sy := range m.Rows {
		grain.nextRow()
		inRow := src.Pix[sy*src.RowStride:]
		out := dst.Pix[row*rowStep:]

		var rowSquare Sample
		if p.Vignetting != nil {
			rowSquare = vsquareY[row]
		}

		for col, sx := range m.Cols {
			pixel := sy*src.Width + sx
			in8 := inRow[sx*src.PixelStride:]

			vignette := Sample(SampleMax)
			if p.Vignetting != nil {
				vignette = p.Vignetting[(rowSquare+vsquareX[col])>>CurveShift]
			}

			in := [3]Sample{Sample(in8[0]) << 8, Sample(in8[1]) << 8, Sample(in8[2]) << 8}
			px := fn(in, pixel, vignette, grain.next())

			o := col * colStep
			out[o+0] = uint8(px[0] >> 8)
			out[o+1] = uint8(px[1] >> 8)
			out[o+2] = uint8(px[2] >> 8)
		}
	}
}
