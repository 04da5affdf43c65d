package bwproc

import "fmt"

// Rotation is a clockwise output rotation in quarter turns.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// RotationFromDegrees converts 0, 90, 180 or 270 to a Rotation.
func RotationFromDegrees(deg int) (Rotation, error) {
	switch deg {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return 0, fmt.Errorf("%w: %d degrees", ErrInvalidRotation, deg)
	}
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) valid() bool {
	return r >= Rotate0 && r <= Rotate270
}

// Mapping holds the source row for every output row and the source column
// for every output column.
//
// When RowMajor is false the output is transposed: output row i becomes
// column i of the rotated image, so a destination buffer must be Width wide
// and Height tall, where Width and Height are already swapped for 90 and 270
// degree rotations.
type Mapping struct {
	Rows     []int
	Cols     []int
	RowMajor bool
	Width    int // rotated output width
	Height   int // rotated output height
}

// NewMapping builds the nearest-neighbor index mapping from an inW x inH
// source to an outW x outH output (before rotation) rotated by rot.
func NewMapping(inW, inH, outW, outH int, rot Rotation) (*Mapping, error) {
	if inW <= 0 || inH <= 0 || outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("%w: %dx%d to %dx%d", ErrInvalidDimensions, inW, inH, outW, outH)
	}
	if !rot.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, int(rot))
	}

	m := &Mapping{
		Rows: make([]int, outH),
		Cols: make([]int, outW),
	}

	flipRows := rot == Rotate90 || rot == Rotate180
	for i := range m.Rows {
		sy := i * inH / outH
		if flipRows {
			sy = inH - 1 - sy
		}
		m.Rows[i] = sy
	}

	flipCols := rot == Rotate180 || rot == Rotate270
	for i := range m.Cols {
		sx := i * inW / outW
		if flipCols {
			sx = inW - 1 - sx
		}
		m.Cols[i] = sx
	}

	if rot == Rotate0 || rot == Rotate180 {
		m.Width, m.Height, m.RowMajor = outW, outH, true
	} else {
		m.Width, m.Height, m.RowMajor = outH, outW, false
	}
	return m, nil
}

// IdentityMapping maps a w x h source onto itself without rotation.
func IdentityMapping(w, h int) *Mapping {
	m := &Mapping{
		Rows:     make([]int, h),
		Cols:     make([]int, w),
		RowMajor: true,
		Width:    w,
		Height:   h,
	}
	for i := range m.Rows {
		m.Rows[i] = i
	}
	for i := range m.Cols {
		m.Cols[i] = i
	}
	return m
}

// Validate reports whether every index addresses a pixel of a w x h source
// and the rotated size matches the index counts.
func (m *Mapping) Validate(w, h int) error {
	if m == nil {
		return fmt.Errorf("%w: nil mapping", ErrInvalidDimensions)
	}
	for i, r := range m.Rows {
		if r < 0 || r >= h {
			return fmt.Errorf("%w: row %d maps to %d, source height %d", ErrOutOfBounds, i, r, h)
		}
	}
	for i, c := range m.Cols {
		if c < 0 || c >= w {
			return fmt.Errorf("%w: column %d maps to %d, source width %d", ErrOutOfBounds, i, c, w)
		}
	}
	ow, oh := len(m.Cols), len(m.Rows)
	if !m.RowMajor {
		ow, oh = oh, ow
	}
	if m.Width != ow || m.Height != oh {
		return fmt.Errorf("%w: mapping is %dx%d, indices give %dx%d", ErrInvalidDimensions, m.Width, m.Height, ow, oh)
	}
	return nil
}

// outputOffset returns the pixel index of (row, col) in the upright rotated
// output.
func (m *Mapping) outputOffset(row, col int) int {
	if m.RowMajor {
		return row*m.Width + col
	}
	return col*m.Width + row
}
