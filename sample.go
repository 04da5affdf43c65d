package bwproc

import "math"

// Mul multiplies two Samples as fractions of SampleMax. The result is
// truncated, so Mul(x, SampleMax) is x-1 for any non-zero x.
func Mul(a, b Sample) Sample {
	return Sample((uint32(a) * uint32(b)) >> 16)
}

// FromFloat converts f in [0,1] to a Sample, truncating. Values outside the
// range saturate and NaN maps to 0.
func FromFloat(f float64) Sample {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return SampleMax
	}
	return Sample(f * SampleMax)
}

func clampSample(v int64) Sample {
	if v < 0 {
		return 0
	}
	if v > SampleMax {
		return SampleMax
	}
	return Sample(v)
}

func addGrain(v, grain Sample) Sample {
	if grain < sampleHalf {
		diff := sampleHalf - grain
		if v < diff {
			return 0
		}
		return v - diff
	}
	diff := grain - sampleHalf
	if v > SampleMax-diff {
		return SampleMax
	}
	return v + diff
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func curvePos(i int) float64 {
	return float64(i) / float64(CurveSize-1)
}

func logistic(t float64) float64 {
	return 1.0 / (1.0 + math.Exp(-t))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}
