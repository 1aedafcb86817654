// Package scene holds the ray tracer's data model: materials, lights,
// primitives, and the scene aggregate that owns them. A Scene is shared
// read-only across the executor's tasks for the duration of one sample.
package scene

import rtmath "photon/pkg/math"

// Material describes how a primitive's surface responds to light.
// Coefficients are expected to be >= 0 and Ior >= 1. A material is
// immutable per primitive for the lifetime of one frame.
type Material struct {
	Color    rtmath.Vec3
	Ambient  rtmath.Vec3
	Specular rtmath.Vec3

	KAmbient       float64
	KDiffuse       float64
	KSpecular      float64
	KReflective    float64
	KTransmittance float64
	Shininess      float64
	Ior            float64
}

// DefaultMaterial is a plain diffuse white surface.
func DefaultMaterial() Material {
	return Material{
		Color:    rtmath.Vec3{1, 1, 1},
		Ambient:  rtmath.Vec3{1, 1, 1},
		Specular: rtmath.Vec3{1, 1, 1},
		KAmbient: 0.1,
		KDiffuse: 0.9,
		Ior:      1,
	}
}
