package bwproc

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// NewImage8 allocates a w x h output backed by an NRGBA image with opaque
// alpha. Use NRGBA to get the image back after processing.
func NewImage8(w, h int) *Image8 {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return &Image8{
		Width:       w,
		Height:      h,
		PixelStride: 4,
		RowStride:   img.Stride,
		Pix:         img.Pix,
	}
}

// Image8FromImage converts any image to an 8-bit source. Alpha is ignored.
func Image8FromImage(img image.Image) *Image8 {
	n := imaging.Clone(img)
	return &Image8{
		Width:       n.Rect.Dx(),
		Height:      n.Rect.Dy(),
		PixelStride: 4,
		RowStride:   n.Stride,
		Pix:         n.Pix,
	}
}

// NRGBA copies the RGB channels of img into an opaque NRGBA image.
func (img *Image8) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Pix[y*img.RowStride:]
		for x := 0; x < img.Width; x++ {
			o := x * img.PixelStride
			out.SetNRGBA(x, y, color.NRGBA{R: row[o], G: row[o+1], B: row[o+2], A: 0xFF})
		}
	}
	return out
}

// Widen8 converts an 8-bit image to packed Samples by shifting each channel
// left 8 bits.
func Widen8(src *Image8) (*Image16, error) {
	if err := src.check("source"); err != nil {
		return nil, err
	}
	out := &Image16{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]Sample, src.Width*src.Height*3),
	}
	for y := 0; y < src.Height; y++ {
		row := src.Pix[y*src.RowStride:]
		dst := out.Pix[y*src.Width*3:]
		for x := 0; x < src.Width; x++ {
			o := x * src.PixelStride
			dst[x*3+0] = Sample(row[o+0]) << 8
			dst[x*3+1] = Sample(row[o+1]) << 8
			dst[x*3+2] = Sample(row[o+2]) << 8
		}
	}
	return out, nil
}

// ScaleMask resamples a w x h mask to dstW x dstH with bilinear filtering, so
// that a mask painted on a preview can be applied to the full source.
func ScaleMask(mask []Sample, w, h, dstW, dstH int) ([]Sample, error) {
	if w <= 0 || h <= 0 || dstW <= 0 || dstH <= 0 || len(mask) != w*h {
		return nil, fmt.Errorf("%w: mask of %d entries as %dx%d to %dx%d", ErrInvalidDimensions, len(mask), w, h, dstW, dstH)
	}
	if w == dstW && h == dstH {
		return append([]Sample(nil), mask...), nil
	}

	gray := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray.SetGray16(x, y, color.Gray16{Y: uint16(mask[y*w+x])})
		}
	}

	scaled := resize.Resize(uint(dstW), uint(dstH), gray, resize.Bilinear)

	out := make([]Sample, dstW*dstH)
	b := scaled.Bounds()
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			c := color.Gray16Model.Convert(scaled.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out[y*dstW+x] = Sample(c.Y)
		}
	}
	return out, nil
}

// RadialMask returns a w x h mask that is 1 at the center and falls off
// linearly to 0 at the inscribed ellipse, 0 outside it. With invert the mask
// is 0 at the center and 1 outside the ellipse.
func RadialMask(w, h int, invert bool) []Sample {
	mask := make([]Sample, w*h)
	hw, hh := float64(w/2), float64(h/2)
	if hw == 0 {
		hw = 1
	}
	if hh == 0 {
		hh = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := (float64(x) - hw) / hw
			fy := (float64(y) - hh) / hh
			r := math.Sqrt(fx*fx + fy*fy)

			var v float64
			switch {
			case r >= 1 && invert:
				v = 1
			case r >= 1:
				v = 0
			case invert:
				v = r
			default:
				v = 1 - r
			}
			mask[y*w+x] = FromFloat(v)
		}
	}
	return mask
}
