package bwproc

const (
	// SampleMax is the largest Sample value, representing 1.0.
	SampleMax = 65535

	sampleHalf = SampleMax / 2
)

const (
	// CurveSize is the number of entries in every Curve.
	CurveSize = 2048
	// CurveShift converts a Sample to a curve index.
	CurveShift = 5
)

const (
	rgbMult  = 2048
	rgbShift = 11
)

const (
	// GrainBufferSize is the length of every GrainBuffer. It is prime so that
	// walking the buffer with small strides does not repeat visibly.
	GrainBufferSize = 29947

	grainIncrementMax = 32
)

const (
	logisticLinearThreshold = 1e-4
)
