package render

import (
	"context"
	"sync/atomic"

	"photon/pkg/camera"
	rtmath "photon/pkg/math"
	"photon/pkg/scene"
)

// State is one of the controller's run states: Idle -> Sampling(s) ->
// Encoding -> (s+1 or Done | Cancelled).
type State int

const (
	Idle State = iota
	Sampling
	Encoding
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	case Encoding:
		return "encoding"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Encoder is the external collaborator that persists a resolved RGBA byte
// buffer, matching spec.md §6's write_image(path, bytes, width, height,
// channels=4) -> bool, reshaped to an idiomatic Go error return.
type Encoder interface {
	WriteImage(path string, pix []byte, width, height int) error
}

// CancelFlag is the single atomic boolean the preview sets to request
// cancellation; the controller observes and clears it only at sample
// boundaries, per spec.md §5.
type CancelFlag struct {
	v int32
}

// Request marks cancellation.
func (f *CancelFlag) Request() { atomic.StoreInt32(&f.v, 1) }

// observe reports and clears the flag; called only between samples.
func (f *CancelFlag) observe() bool {
	return atomic.CompareAndSwapInt32(&f.v, 1, 0)
}

// Controller owns one render's frame buffers and drives it sample by
// sample, generalized from the teacher's cmd/render/main.go main-flow
// (tile dispatch, wg.Wait, single save-to-disk) into a state machine that
// re-dispatches the Executor once per sample and persists the
// progressively-refined image after each one, so the preview always has a
// partial result to display.
type Controller struct {
	Config  Config
	Rng     *rtmath.XorShift32
	Encoder Encoder

	State       State
	SampleIndex int
}

// NewController builds a controller with its own PRNG seeded from seed
// (0 is remapped away from the degenerate XorShift32 zero state).
func NewController(cfg Config, seed uint32, enc Encoder) *Controller {
	return &Controller{
		Config:  cfg,
		Rng:     rtmath.NewXorShift32(seed),
		Encoder: enc,
		State:   Idle,
	}
}

// Run drives sc through up to c.Config.MaxSamples, writing outputPath
// after every sample so the preview sees progressively refined results.
// It returns the number of samples completed and whether the render ended
// by cancellation rather than by exhausting max_samples.
func (c *Controller) Run(ctx context.Context, sc *scene.Scene, cam *camera.Camera, quit *CancelFlag, outputPath string) (samplesRun int, cancelled bool, err error) {
	ssFactor := c.Config.EffectiveSSFactor()
	gridW, gridH := c.Config.Width*ssFactor, c.Config.Height*ssFactor

	supersample := make([]rtmath.Vec4, gridW*gridH)
	acc := NewAccumulator(c.Config.Width, c.Config.Height, ssFactor)
	exec := &Executor{}

	for s := 0; s < c.Config.MaxSamples; s++ {
		if quit.observe() {
			c.State = Cancelled
			return s, true, nil
		}

		c.State = Sampling
		c.SampleIndex = s

		jittered := jitterLights(sc.Lights, c.Rng)
		sample := sc.Snapshot(jittered)

		if err := exec.RunSample(ctx, sample, cam, gridW, gridH, supersample); err != nil {
			return s, false, err
		}

		c.State = Encoding
		resolved := acc.Resolve(supersample, c.Rng)
		acc.Accumulate(resolved)

		if err := c.Encoder.WriteImage(outputPath, acc.Encode(), c.Config.Width, c.Config.Height); err != nil {
			return s + 1, false, err
		}
	}

	c.State = Done
	return c.Config.MaxSamples, false, nil
}

// jitterLights perturbs every light by a Gaussian N(l, 0.1) on each axis,
// w preserved, per spec.md §4.5 step 6. The original lights are left
// untouched by construction: the controller only ever hands out a
// scene.Scene.Snapshot carrying the jittered copy, so there is nothing to
// restore once the render ends.
func jitterLights(lights []scene.Light, rng *rtmath.XorShift32) []scene.Light {
	const jitterStddev = 0.1
	out := make([]scene.Light, len(lights))
	for i, l := range lights {
		out[i] = l.Jittered(rng, jitterStddev)
	}
	return out
}
