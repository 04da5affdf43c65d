package bwproc

import (
	"fmt"
	"math"
)

func newCurve() Curve {
	return make(Curve, CurveSize)
}

// IdentityCurve returns the linear curve mapping every level to itself.
func IdentityCurve() Curve {
	curve := newCurve()
	for i := range curve {
		curve[i] = FromFloat(curvePos(i))
	}
	return curve
}

// LogisticContrast builds an S-shaped contrast curve centered at 0.5.
// Positive v increases contrast, negative v reduces it, and |v| < 1e-4 gives
// the identity. LogisticContrast(v) and LogisticContrast(-v) are inverses of
// each other. Both ends always map to 0 and 1.
func LogisticContrast(v float64) Curve {
	if math.Abs(v) < logisticLinearThreshold {
		return IdentityCurve()
	}

	a := math.Abs(v)
	yCrop := logistic(-a)
	cropFactor := 1.0 / (1.0 - 2.0*yCrop)

	curve := newCurve()
	for i := range curve {
		x := curvePos(i)
		var val float64
		if v > 0 {
			val = (logistic(x*a*2.0-a) - yCrop) * cropFactor
		} else {
			val = (logit(x/cropFactor+yCrop) + a) / (2.0 * a)
		}
		curve[i] = FromFloat(clamp01(val))
	}
	return curve
}

// InvertedContrast builds a linear curve running from max at black down to
// min at white.
func InvertedContrast(min, max float64) Curve {
	curve := newCurve()
	for i := range curve {
		curve[i] = FromFloat(max - (max-min)*curvePos(i))
	}
	return curve
}

// GammaContrast builds the power curve x^gamma.
func GammaContrast(gamma float64) Curve {
	curve := newCurve()
	for i := range curve {
		curve[i] = FromFloat(math.Pow(curvePos(i), gamma))
	}
	return curve
}

// SinusoidalVignetting builds a vignetting falloff curve indexed by squared
// normalized radius. The curve is flat at 1 below start² and falls off as
// cos(x*pi/2/z)^exponent past it, where x is the radius remapped to [0,1]
// over the falloff band; it is 0 once x reaches z.
func SinusoidalVignetting(start, z, exponent float64) (Curve, error) {
	if !(start >= 0 && start <= 1) {
		return nil, fmt.Errorf("%w: vignetting start %v outside [0,1]", ErrInvalidParameter, start)
	}
	if !(z > 0) {
		return nil, fmt.Errorf("%w: vignetting z %v must be positive", ErrInvalidParameter, z)
	}

	start *= start

	curve := newCurve()
	i := 0
	for ; float64(i) < CurveSize*start && i < CurveSize; i++ {
		curve[i] = SampleMax
	}
	for ; i < CurveSize; i++ {
		x := math.Sqrt((curvePos(i) - start) / (1.0 - start))
		if x >= z {
			curve[i] = 0
			continue
		}
		curve[i] = FromFloat(math.Pow(math.Cos(x*(math.Pi/2.0)/z), exponent))
	}
	return curve, nil
}

// vignettingSquares returns, for each of n positions, half the squared
// normalized distance from the middle as a Sample. The sum of a row and a
// column term stays within SampleMax.
func vignettingSquares(n int) []Sample {
	middle := float64(n) / 2.0
	squares := make([]Sample, n)
	for i := range squares {
		x := math.Abs(float64(i)-middle) / middle
		squares[i] = FromFloat(x * x / 2.0)
	}
	return squares
}

func checkCurve(c Curve, what string) error {
	if len(c) != CurveSize {
		return fmt.Errorf("%s has %d entries, want %d", what, len(c), CurveSize)
	}
	return nil
}
