package main

import (
	"errors"
	"math"

	"github.com/schani/bwproc"
	"github.com/spf13/pflag"
)

// effectFlags are the tone and tint settings shared by render and query.
type effectFlags struct {
	red, green, blue float64
	contrast         float64
	tintHue          float64
	tintAmount       float64
	demoLayers       bool
}

func (f *effectFlags) register(fs *pflag.FlagSet) {
	def := bwproc.DefaultParams()
	fs.Float64Var(&f.red, "red", def.Red, "red mix weight")
	fs.Float64Var(&f.green, "green", def.Green, "green mix weight")
	fs.Float64Var(&f.blue, "blue", def.Blue, "blue mix weight")
	fs.Float64Var(&f.contrast, "contrast", 0, "logistic contrast, negative values flatten")
	fs.Float64Var(&f.tintHue, "tint-hue", 23, "tint hue in degrees")
	fs.Float64Var(&f.tintAmount, "tint-amount", 0.1, "tint amount in [0,1]")
	fs.BoolVar(&f.demoLayers, "demo-layers", false, "add brighten and darken layers with radial masks")
}

// params builds the tone parameters for a w x h source.
func (f *effectFlags) params(w, h int) (bwproc.Params, error) {
	if !finite(f.contrast) {
		return bwproc.Params{}, errors.New("contrast must be finite")
	}
	p := bwproc.Params{
		Red:        f.red,
		Green:      f.green,
		Blue:       f.blue,
		TintHue:    f.tintHue,
		TintAmount: f.tintAmount,
	}
	if f.contrast != 0 {
		p.Layers = append(p.Layers, bwproc.ContrastLayer{Curve: bwproc.LogisticContrast(f.contrast)})
	}
	if f.demoLayers {
		p.Layers = append(p.Layers,
			bwproc.ContrastLayer{Curve: bwproc.GammaContrast(0.5), Mask: bwproc.RadialMask(w, h, false)},
			bwproc.ContrastLayer{Curve: bwproc.GammaContrast(2.0), Mask: bwproc.RadialMask(w, h, true)},
		)
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
