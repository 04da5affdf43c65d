package bwproc

import (
	"errors"
	"math"
	"testing"
)

func gradientImage16(w, h int) *Image16 {
	return newImage16(w, h, func(x, y int) [3]Sample {
		return [3]Sample{Sample(1000 + x*3000 + y*700), Sample(500 + y*2000), Sample(x * 900)}
	})
}

func processAll(t *testing.T, src *Image16, m *Mapping, p *Params, opts ...func(o *Options)) []Sample {
	t.Helper()
	dst := make([]Sample, m.Width*m.Height*3)
	if err := Process(dst, src, m, NewCache(src.Width*src.Height), p, opts...); err != nil {
		t.Fatalf("process: %v", err)
	}
	return dst
}

func TestProcessMixOnly(t *testing.T) {
	src := newImage16(2, 2, func(x, y int) [3]Sample {
		return [][3]Sample{
			{40000, 0, 0},
			{0, 40000, 0},
			{0, 0, 40000},
			{SampleMax, SampleMax, SampleMax},
		}[y*2+x]
	})
	p := Params{Red: 1}
	dst := processAll(t, src, IdentityMapping(2, 2), &p)

	identity := IdentityCurve()
	red := pixel16(dst, 2, 0, 0)
	want := identity[40000>>CurveShift]
	if red != [3]Sample{want, want, want} {
		t.Fatalf("red pixel: got %v want %d", red, want)
	}
	for _, pos := range [][2]int{{1, 0}, {0, 1}} {
		if got := pixel16(dst, 2, pos[0], pos[1]); got != [3]Sample{} {
			t.Fatalf("pixel %v: got %v want black", pos, got)
		}
	}
	if got := pixel16(dst, 2, 1, 1); got != [3]Sample{SampleMax, SampleMax, SampleMax} {
		t.Fatalf("white pixel: got %v", got)
	}
}

func TestProcessTransformsEachSourcePixelOnce(t *testing.T) {
	src := gradientImage16(4, 4)
	m, err := NewMapping(4, 4, 8, 8, Rotate0)
	if err != nil {
		t.Fatalf("new mapping: %v", err)
	}
	c := NewCache(16)
	c.bind(1)
	p := DefaultParams()
	stub := &countingStub{calls: map[int]int{}}
	dst := make([]Sample, 8*8*3)

	st := processCached(dst, src, m, c, &p, NewRand(1), stub.fn)
	if st.Computed != 16 || st.Reused != 48 {
		t.Fatalf("got %+v want 16 computed, 48 reused", st)
	}
	for pixel, n := range stub.calls {
		if n != 1 {
			t.Fatalf("pixel %d transformed %d times", pixel, n)
		}
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := pixel16(dst, 8, x, y)
			pixel := (y/2)*4 + x/2
			want := [3]Sample{src.Pix[pixel*3], Sample(pixel), 1}
			if got != want {
				t.Fatalf("(%d,%d): got %v want %v", x, y, got, want)
			}
		}
	}
}

func TestProcessCacheReuse(t *testing.T) {
	src := gradientImage16(6, 5)
	m := IdentityMapping(6, 5)
	c := NewCache(30)
	p := DefaultParams()

	var st Stats
	onStats := func(o *Options) { o.OnStats = func(s Stats) { st = s } }

	first := make([]Sample, 6*5*3)
	if err := Process(first, src, m, c, &p, onStats); err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.Computed != 30 || st.Reused != 0 {
		t.Fatalf("first pass: %+v", st)
	}

	second := make([]Sample, 6*5*3)
	if err := Process(second, src, m, c, &p, onStats); err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.Computed != 0 || st.Reused != 30 {
		t.Fatalf("second pass: %+v", st)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d: cached %d, computed %d", i, second[i], first[i])
		}
	}

	p.Red = 1
	p.Green = 0
	p.Blue = 0
	if err := Process(second, src, m, c, &p, onStats); err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.Computed != 30 {
		t.Fatalf("changed params should recompute: %+v", st)
	}

	c.Reset()
	if err := Process(second, src, m, c, &p, onStats); err != nil {
		t.Fatalf("process: %v", err)
	}
	if st.Computed != 30 {
		t.Fatalf("reset cache should recompute: %+v", st)
	}
}

func TestProcessMaskEditInvalidatesCache(t *testing.T) {
	src := solidImage16(4, 4, 30000)
	m := IdentityMapping(4, 4)
	c := NewCache(16)
	mask := make([]Sample, 16)
	p := Params{Red: 1, Layers: []ContrastLayer{{Curve: flatCurve(60000), Mask: mask}}}

	before := make([]Sample, 16*3)
	if err := Process(before, src, m, c, &p); err != nil {
		t.Fatalf("process: %v", err)
	}

	mask[5] = SampleMax
	after := make([]Sample, 16*3)
	if err := Process(after, src, m, c, &p); err != nil {
		t.Fatalf("process: %v", err)
	}
	if pixel16(after, 4, 1, 1) == pixel16(before, 4, 1, 1) {
		t.Fatal("edited mask did not change the output")
	}
	if pixel16(after, 4, 0, 0) != pixel16(before, 4, 0, 0) {
		t.Fatal("unmasked pixel changed")
	}
}

func TestProcessVignetting(t *testing.T) {
	vig, err := SinusoidalVignetting(0, 1, 0.5)
	if err != nil {
		t.Fatalf("vignetting: %v", err)
	}
	p := Params{Red: 1, Vignetting: vig}
	m := IdentityMapping(64, 64)

	white := processAll(t, solidImage16(64, 64, SampleMax), m, &p)
	prev := pixel16(white, 64, 32, 32)[0]
	for k := 33; k < 64; k++ {
		v := pixel16(white, 64, k, k)[0]
		if v > prev || (k >= 36 && v == prev) {
			t.Fatalf("diagonal %d: %d after %d", k, v, prev)
		}
		prev = v
	}

	// Mid-gray with a linear cosine falloff darkens strictly from the center
	// towards both corners of the diagonal.
	vig, _ = SinusoidalVignetting(0, 1, 1)
	p.Vignetting = vig
	gray := processAll(t, solidImage16(16, 16, sampleHalf), IdentityMapping(16, 16), &p)
	for _, dir := range []int{1, -1} {
		prev := pixel16(gray, 16, 8, 8)
		for k := 8 + dir; k >= 0 && k < 16; k += dir {
			v := pixel16(gray, 16, k, k)
			if v[0] >= prev[0] || v[0] != v[1] || v[1] != v[2] {
				t.Fatalf("gray diagonal %d: %v after %v", k, v, prev)
			}
			prev = v
		}
	}
}

func TestProcessNeutralGrain(t *testing.T) {
	src := gradientImage16(7, 3)
	m := IdentityMapping(7, 3)
	p := DefaultParams()
	plain := processAll(t, src, m, &p)

	grain, err := UniformGrain(0, NewRand(9))
	if err != nil {
		t.Fatalf("grain: %v", err)
	}
	p.Grain = grain
	grained := processAll(t, src, m, &p, func(o *Options) { o.Rand = NewRand(9) })
	for i := range plain {
		if plain[i] != grained[i] {
			t.Fatalf("sample %d: %d with neutral grain, %d without", i, grained[i], plain[i])
		}
	}
}

func TestProcessGrainReproducible(t *testing.T) {
	src := gradientImage16(9, 9)
	m, _ := NewMapping(9, 9, 12, 12, Rotate0)
	grain, _ := UniformGrain(0.2, NewRand(3))
	p := DefaultParams()
	p.Grain = grain

	a := processAll(t, src, m, &p, func(o *Options) { o.Rand = NewRand(11) })
	b := processAll(t, src, m, &p, func(o *Options) { o.Rand = NewRand(11) })
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs with the same seed", i)
		}
	}
}

func TestProcessRotation(t *testing.T) {
	const w, h = 5, 3
	src := newImage16(w, h, func(x, y int) [3]Sample {
		return [3]Sample{Sample((y*w + x) * 4000), 0, 0}
	})
	p := Params{Red: 1}
	upright := processAll(t, src, IdentityMapping(w, h), &p)

	for _, tt := range []struct {
		rot Rotation
		// source position of output (x, y)
		from func(x, y int) (int, int)
	}{
		{Rotate90, func(x, y int) (int, int) { return y, h - 1 - x }},
		{Rotate180, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }},
		{Rotate270, func(x, y int) (int, int) { return w - 1 - y, x }},
	} {
		m, err := NewMapping(w, h, w, h, tt.rot)
		if err != nil {
			t.Fatalf("%d: %v", tt.rot.Degrees(), err)
		}
		dst := processAll(t, src, m, &p)
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				sx, sy := tt.from(x, y)
				if got, want := pixel16(dst, m.Width, x, y), pixel16(upright, w, sx, sy); got != want {
					t.Fatalf("%d: (%d,%d) got %v want source (%d,%d) %v", tt.rot.Degrees(), x, y, got, sx, sy, want)
				}
			}
		}
	}
}

func TestProcess8(t *testing.T) {
	src := gradientImage16(6, 4)
	m, _ := NewMapping(6, 4, 3, 8, Rotate90)
	p := DefaultParams()
	wide := processAll(t, src, m, &p)

	dst := NewImage8(m.Width, m.Height)
	if err := Process8(dst, src, m, NewCache(24), &p); err != nil {
		t.Fatalf("process8: %v", err)
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			w := pixel16(wide, m.Width, x, y)
			want := [3]uint8{uint8(w[0] >> 8), uint8(w[1] >> 8), uint8(w[2] >> 8)}
			if got := pixel8(dst, x, y); got != want {
				t.Fatalf("(%d,%d): got %v want %v", x, y, got, want)
			}
			if a := dst.Pix[y*dst.RowStride+x*4+3]; a != 0xFF {
				t.Fatalf("(%d,%d): alpha %d", x, y, a)
			}
		}
	}

	if err := Process8(NewImage8(m.Height, m.Width), src, m, NewCache(24), &p); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("unrotated output size: got %v", err)
	}
}

func TestProcessErrorsLeaveOutputUntouched(t *testing.T) {
	src := gradientImage16(4, 4)
	m := IdentityMapping(4, 4)
	p := DefaultParams()

	for _, tt := range []struct {
		name string
		run  func(dst []Sample) error
		want error
	}{
		{"short mask", func(dst []Sample) error {
			bad := p
			bad.Layers = []ContrastLayer{{Curve: IdentityCurve(), Mask: make([]Sample, 3)}}
			return Process(dst, src, m, NewCache(16), &bad)
		}, ErrLayerMismatch},
		{"short curve", func(dst []Sample) error {
			bad := p
			bad.Layers = []ContrastLayer{{Curve: make(Curve, 10)}}
			return Process(dst, src, m, NewCache(16), &bad)
		}, ErrLayerMismatch},
		{"cache size", func(dst []Sample) error {
			return Process(dst, src, m, NewCache(15), &p)
		}, ErrInvalidDimensions},
		{"mapping bounds", func(dst []Sample) error {
			wide := IdentityMapping(4, 4)
			wide.Cols[3] = 4
			return Process(dst, src, wide, NewCache(16), &p)
		}, ErrOutOfBounds},
		{"grain size", func(dst []Sample) error {
			bad := p
			bad.Grain = make(GrainBuffer, 100)
			return Process(dst, src, m, NewCache(16), &bad)
		}, ErrInvalidParameter},
		{"nan weight", func(dst []Sample) error {
			bad := p
			bad.Red = math.NaN()
			return Process(dst, src, m, NewCache(16), &bad)
		}, ErrInvalidParameter},
		{"short output", func(dst []Sample) error {
			return Process(dst[:10], src, m, NewCache(16), &p)
		}, ErrInvalidDimensions},
	} {
		dst := make([]Sample, 16*3)
		for i := range dst {
			dst[i] = 7
		}
		if err := tt.run(dst); !errors.Is(err, tt.want) {
			t.Fatalf("%s: got %v want %v", tt.name, err, tt.want)
		}
		for i, v := range dst {
			if v != 7 {
				t.Fatalf("%s: sample %d written", tt.name, i)
			}
		}
	}
}
