package bwproc

import "testing"

func flatCurve(v Sample) Curve {
	c := make(Curve, CurveSize)
	for i := range c {
		c[i] = v
	}
	return c
}

func TestTransformMix(t *testing.T) {
	p := Params{Red: 1}
	tc := newTransformContext(&p)
	if got := tc.mix([3]Sample{40000, 1, 2}); got != 40000 {
		t.Fatalf("red only: got %d want 40000", got)
	}

	p = Params{Red: 1, Green: 1, Blue: 1}
	tc = newTransformContext(&p)
	if got := tc.mix([3]Sample{50000, 50000, 50000}); got != SampleMax {
		t.Fatalf("overflow: got %d want %d", got, SampleMax)
	}

	p = Params{Red: -1, Green: 0.2}
	tc = newTransformContext(&p)
	if got := tc.mix([3]Sample{60000, 1000, 0}); got != 0 {
		t.Fatalf("negative sum: got %d want 0", got)
	}
}

func TestTransformMaskBlend(t *testing.T) {
	const in = 30000
	result := Sample(50000)
	layer := ContrastLayer{Curve: flatCurve(result), Mask: []Sample{0, SampleMax, sampleHalf}}
	p := Params{Red: 1, Layers: []ContrastLayer{layer}}
	tc := newTransformContext(&p)

	for _, tt := range []struct {
		pixel int
		want  Sample
	}{
		{0, in},
		{1, result},
		{2, 40000},
	} {
		pr := probe{layered: make([]Sample, 1)}
		tc.transform([3]Sample{in, 0, 0}, tt.pixel, SampleMax, sampleHalf, &pr)
		if pr.mixed != in {
			t.Fatalf("mixed %d want %d", pr.mixed, in)
		}
		if absDiff(pr.layered[0], tt.want) > 1 {
			t.Fatalf("mask %d: got %d want %d", layer.Mask[tt.pixel], pr.layered[0], tt.want)
		}
	}
}

func TestTransformLayerOrder(t *testing.T) {
	// The second layer reads the first layer's output.
	p := Params{Red: 1, Layers: []ContrastLayer{
		{Curve: flatCurve(10000)},
		{Curve: GammaContrast(2)},
	}}
	tc := newTransformContext(&p)
	pr := probe{layered: make([]Sample, 2)}
	tc.transform([3]Sample{60000, 0, 0}, 0, SampleMax, sampleHalf, &pr)

	if pr.layered[0] != 10000 {
		t.Fatalf("first layer %d want 10000", pr.layered[0])
	}
	if want := p.Layers[1].Curve.At(10000); pr.layered[1] != want {
		t.Fatalf("second layer %d want %d", pr.layered[1], want)
	}
}

func TestTransformVignetteAndGrain(t *testing.T) {
	p := Params{Red: 1}
	tc := newTransformContext(&p)
	white := [3]Sample{SampleMax, 0, 0}

	full := tc.transform(white, 0, SampleMax, sampleHalf, nil)
	dark := tc.transform(white, 0, 0, sampleHalf, nil)
	if dark[0] != 0 {
		t.Fatalf("zero vignette: got %v", dark)
	}
	if full[0] <= dark[0] {
		t.Fatalf("vignette did not darken: %v vs %v", full, dark)
	}

	gray := [3]Sample{20000, 0, 0}
	neutral := tc.transform(gray, 0, SampleMax, sampleHalf, nil)
	lighter := tc.transform(gray, 0, SampleMax, SampleMax, nil)
	darker := tc.transform(gray, 0, SampleMax, 0, nil)
	if !(darker[0] < neutral[0] && neutral[0] < lighter[0]) {
		t.Fatalf("grain order: %d %d %d", darker[0], neutral[0], lighter[0])
	}
	if darker[0] != 0 {
		t.Fatalf("full negative grain should floor at 0, got %d", darker[0])
	}
}
