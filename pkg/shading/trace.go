package shading

import (
	rtmath "photon/pkg/math"
	"photon/pkg/scene"
)

// MaxDepth bounds the reflection/refraction recursion; a ray that would
// need to bounce deeper than this contributes nothing further.
const MaxDepth = 5

// Background is the RGBA value for a ray that hits nothing: transparent
// black, distinguishing a miss from a hit that happens to resolve to black.
var Background = rtmath.Vec4{0, 0, 0, 0}

// CastRay traces ray through s and returns the RGBA color it carries, in
// the manner of the teacher's depth-limited trace(): the depth budget is
// checked first, then the nearest hit, then the hit's material drives at
// most one reflection subray and one refraction subray before the local
// Phong term is evaluated with those two colors folded in. A hit always
// carries alpha 1; a miss carries Background's alpha 0.
func CastRay(s *scene.Scene, ray rtmath.Ray, depth int) rtmath.Vec4 {
	if depth > MaxDepth {
		return Background
	}
	hit, ok := s.Nearest(ray, scene.RayTracer)
	if !ok {
		return Background
	}
	rgb := rtmath.ClampVec3(castHit(s, ray, hit, depth), 0, 1)
	return rtmath.Vec4{rgb[0], rgb[1], rgb[2], 1}
}

func castHit(s *scene.Scene, ray rtmath.Ray, hit scene.Hit, depth int) rtmath.Vec3 {
	point := rtmath.Vec3From4(ray.At(hit.T))
	normal := hit.NormalWorld
	mtl := hit.Primitive.Material
	dir := ray.Dir3()

	eyeWorld := rtmath.TransformPoint(s.CameraMV, rtmath.NewPoint(0, 0, 0))
	eyeDir := eyeWorld.Sub(point).Normalize()

	var reflectColor rtmath.Vec3
	if mtl.KReflective > 0 || mtl.KSpecular > 0 {
		reflectDir := rtmath.Reflect(dir, normal).Normalize()
		reflectRay := rtmath.Ray{Start: rtmath.Point4From3(point), Dir: rtmath.Dir4From3(reflectDir)}.Offset()
		reflectColor = rtmath.Vec3From4(CastRay(s, reflectRay, depth+1))
	}

	var refractColor rtmath.Vec3
	if mtl.KTransmittance > rtmath.Epsilon {
		n := normal
		etaFrom, etaTo := s.AmbientIOR, mtl.Ior
		if dir.Dot(normal) >= 0 {
			n = normal.Mul(-1)
			etaFrom, etaTo = mtl.Ior, s.AmbientIOR
		}
		refractDir := rtmath.Refract(dir, n, etaFrom/etaTo)
		if rtmath.IsImaginary(refractDir) {
			refractDir = rtmath.Reflect(dir, normal).Normalize()
		}
		refractRay := rtmath.Ray{Start: rtmath.Point4From3(point), Dir: rtmath.Dir4From3(refractDir)}.Offset()
		refractColor = rtmath.Vec3From4(CastRay(s, refractRay, depth+1))
	}

	return Shade(s, point, normal, eyeDir, mtl, hit.Primitive, reflectColor, refractColor)
}
