package scene

import rtmath "photon/pkg/math"

// Light is a directional or positional light source, distinguished by the
// w component of Position: w=0 is directional (pointing from the origin
// toward -xyz), w=1 is positional.
type Light struct {
	Position rtmath.Vec4

	Ambient  rtmath.Vec3
	Diffuse  rtmath.Vec3
	Specular rtmath.Vec3
}

// IsDirectional reports whether the light is directional (w == 0).
func (l Light) IsDirectional() bool {
	return l.Position[3] == 0
}

// DirectionFrom returns the unit direction from world point p toward the
// light, and the light's effective world position for shadow-ray length
// purposes (used only when positional).
func (l Light) DirectionFrom(camMV rtmath.Mat4, p rtmath.Vec3) (dir rtmath.Vec3, worldPos rtmath.Vec3, positional bool) {
	if l.IsDirectional() {
		d := rtmath.Vec3{-l.Position[0], -l.Position[1], -l.Position[2]}
		return d.Normalize(), rtmath.Vec3{}, false
	}
	wp := rtmath.TransformPoint(camMV, l.Position)
	d := wp.Sub(p)
	return d.Normalize(), wp, true
}

// Jittered returns a copy of the light with its position perturbed by a
// Gaussian offset on each axis, w preserved. Used between samples to
// soften hard shadows over the progressive accumulation.
func (l Light) Jittered(rng *rtmath.XorShift32, stddev float64) Light {
	jittered := l
	jittered.Position = rtmath.Vec4{
		l.Position[0] + rng.Gaussian(0, stddev),
		l.Position[1] + rng.Gaussian(0, stddev),
		l.Position[2] + rng.Gaussian(0, stddev),
		l.Position[3],
	}
	return jittered
}
