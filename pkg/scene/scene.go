package scene

import rtmath "photon/pkg/math"

// AmbientIOR is the index of refraction of the medium between objects
// (air), used as the "outside" ior for refraction when a ray is not
// already inside a transmissive primitive.
const AmbientIOR = 1.000293

// Scene owns an ordered sequence of primitives and lights, the camera's
// model-view transform, and the ambient IOR. It is shared read-only
// across an entire sample: tasks borrow an immutable snapshot of it.
type Scene struct {
	Primitives []*Primitive
	Lights     []Light
	CameraMV   rtmath.Mat4
	AmbientIOR float64
}

// NLights returns the number of lights the ray tracer consumes (all of
// them; the preview's at-most-8 cap does not apply to the core).
func (s *Scene) NLights() int { return len(s.Lights) }

// Nearest performs a linear scan over primitives visible to want, honoring
// target visibility, and returns the closest nonnegative hit.
func (s *Scene) Nearest(ray rtmath.Ray, want Target) (Hit, bool) {
	var best Hit
	found := false
	for _, p := range s.Primitives {
		if !p.Target.Visible(want) {
			continue
		}
		if hit, ok := p.Intersect(ray); ok {
			if !found || hit.T < best.T {
				best, found = hit, true
			}
		}
	}
	return best, found
}

// NearestExcept is Nearest but skips a single primitive, used by shadow
// rays to avoid self-intersection at the hit's own surface.
func (s *Scene) NearestExcept(ray rtmath.Ray, want Target, except *Primitive) (Hit, bool) {
	var best Hit
	found := false
	for _, p := range s.Primitives {
		if p == except || !p.Target.Visible(want) {
			continue
		}
		if hit, ok := p.Intersect(ray); ok {
			if !found || hit.T < best.T {
				best, found = hit, true
			}
		}
	}
	return best, found
}

// Snapshot returns a shallow copy of the scene with its lights replaced,
// used by the controller to hand each sample a scene whose light
// positions have been jittered without mutating the shared original.
func (s *Scene) Snapshot(lights []Light) *Scene {
	return &Scene{
		Primitives: s.Primitives,
		Lights:     lights,
		CameraMV:   s.CameraMV,
		AmbientIOR: s.AmbientIOR,
	}
}
