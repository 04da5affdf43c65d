// Package bwproc renders black-and-white film simulations in 16-bit fixed
// point.
//
// A color source is mixed to gray with per-channel weights, passed through an
// ordered stack of contrast curves (each optionally blended by a per-pixel
// mask), darkened by a vignetting curve, perturbed by film grain, and finally
// colorized through a tint table. Curves, grain buffers and index mappings are
// built once per parameter set or output geometry and reused for every call.
//
// Two entry points share one per-pixel transform: Process works on 16-bit
// sources with a Cache that transforms every source pixel at most once per
// pass, and ProcessDirect8 streams 8-bit sources into strided, possibly
// rotated, 8-bit destinations. QueryPixel evaluates a single pixel for
// interactive previews.
//
// Nothing in the package is safe for concurrent use against a shared Cache or
// random generator.
package bwproc
