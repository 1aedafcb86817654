package render

import (
	gomath "math"

	rtmath "photon/pkg/math"
)

// Accumulator owns the W x H progressive running mean and encodes it to an
// 8-bit RGBA byte buffer, generalized from the teacher's
// pkg/renderer.Renderer frame buffer management (image.RGBA, row-major Pix
// writes) to a per-sample supersampled resolve plus progressive averaging
// across samples, rather than the teacher's one-shot subdivision render.
// The w component carried alongside color is coverage (1 for a ray that
// hit something, 0 for a miss), so an all-miss scene resolves to a wholly
// transparent image rather than an opaque black one.
type Accumulator struct {
	Width, Height int
	SSFactor      int

	mean    []rtmath.Vec4
	samples int
}

// NewAccumulator allocates a zeroed W x H accumulator.
func NewAccumulator(width, height, ssFactor int) *Accumulator {
	if ssFactor < 1 {
		ssFactor = 1
	}
	return &Accumulator{
		Width:    width,
		Height:   height,
		SSFactor: ssFactor,
		mean:     make([]rtmath.Vec4, width*height),
	}
}

// SampleCount returns the number of samples folded into the running mean.
func (a *Accumulator) SampleCount() int { return a.samples }

// Resolve downsamples a Ws x Hs supersample buffer into this accumulator's
// W x H resolution, per spec.md §4.5 step 2: with SSFactor == 1 each output
// pixel copies its single supersample; otherwise SSFactor*4 subpixel offsets
// are drawn from a Poisson(mean=SSFactor/2) distribution on each axis,
// clamped into [0, SSFactor-1], and averaged.
func (a *Accumulator) Resolve(supersample []rtmath.Vec4, rng *rtmath.XorShift32) []rtmath.Vec4 {
	out := make([]rtmath.Vec4, a.Width*a.Height)
	gridW := a.Width * a.SSFactor

	if a.SSFactor == 1 {
		copy(out, supersample)
		return out
	}

	subpixelDraws := a.SSFactor * 4
	poissonMean := float64(a.SSFactor) / 2

	for j := 0; j < a.Height; j++ {
		for i := 0; i < a.Width; i++ {
			var sum rtmath.Vec4
			for d := 0; d < subpixelDraws; d++ {
				ox := clampInt(rng.Poisson(poissonMean), 0, a.SSFactor-1)
				oy := clampInt(rng.Poisson(poissonMean), 0, a.SSFactor-1)
				sx := i*a.SSFactor + ox
				sy := j*a.SSFactor + oy
				sum = sum.Add(supersample[sy*gridW+sx])
			}
			out[j*a.Width+i] = sum.Mul(1.0 / float64(subpixelDraws))
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Accumulate folds a resolved per-sample color buffer into the progressive
// running mean: acc_p <- (acc_p*s + sample_p) / (s+1), where s is the
// number of samples already folded in.
func (a *Accumulator) Accumulate(sample []rtmath.Vec4) {
	s := float64(a.samples)
	for i, c := range sample {
		a.mean[i] = a.mean[i].Mul(s).Add(c).Mul(1 / (s + 1))
	}
	a.samples++
}

// Encode renders the running mean to an 8-bit RGBA byte buffer, row-major.
// A pixel that never once resolved to a hit keeps a mean alpha of 0 and so
// encodes to (0,0,0,0), matching the spec's "entirely clear image" for an
// empty scene.
func (a *Accumulator) Encode() []byte {
	out := make([]byte, a.Width*a.Height*4)
	for i, c := range a.mean {
		out[i*4+0] = encodeByte(c[0])
		out[i*4+1] = encodeByte(c[1])
		out[i*4+2] = encodeByte(c[2])
		out[i*4+3] = encodeByte(c[3])
	}
	return out
}

// encodeByte implements the spec's exact rounding rule:
// byte = floor(component*255 + 0.5) on a component already clamped to [0,1].
func encodeByte(c float64) byte {
	c = rtmath.Clamp(c, 0, 1)
	return byte(gomath.Floor(c*255 + 0.5))
}
