// Package math provides the numeric kernel for the ray tracer: vector and
// matrix types, the reflection/refraction laws, clamping, near-equality,
// and the analytic ray/sphere and ray/plane intersection tests. It knows
// nothing about materials, scenes, or shading.
package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-wide vector (direction or color channel triple).
type Vec3 = mgl64.Vec3

// Vec4 is a 4-wide homogeneous point or direction. By convention w=1 marks
// a point, w=0 a direction.
type Vec4 = mgl64.Vec4

// Mat4 is a 4x4 transform.
type Mat4 = mgl64.Mat4

// NewPoint builds a homogeneous point (w=1).
func NewPoint(x, y, z float64) Vec4 { return Vec4{x, y, z, 1} }

// NewDir builds a homogeneous direction (w=0).
func NewDir(x, y, z float64) Vec4 { return Vec4{x, y, z, 0} }

// Point4From3 lifts a 3-vector to a homogeneous point.
func Point4From3(v Vec3) Vec4 { return Vec4{v[0], v[1], v[2], 1} }

// Dir4From3 lifts a 3-vector to a homogeneous direction.
func Dir4From3(v Vec3) Vec4 { return Vec4{v[0], v[1], v[2], 0} }

// Vec3From4 drops the w component.
func Vec3From4(v Vec4) Vec3 { return Vec3{v[0], v[1], v[2]} }

// TransformPoint applies m to a homogeneous point and returns the 3-vector.
func TransformPoint(m Mat4, p Vec4) Vec3 {
	r := m.Mul4x1(p)
	return Vec3{r[0], r[1], r[2]}
}

// TransformDir applies m to a homogeneous direction and returns the 3-vector.
func TransformDir(m Mat4, d Vec4) Vec3 {
	r := m.Mul4x1(d)
	return Vec3{r[0], r[1], r[2]}
}

const (
	// Epsilon is the tolerance used for root-finding and grazing tests.
	Epsilon = 1e-7
	// SelfIntersectOffset is how far a transmitted/reflected ray origin is
	// pushed along its direction to escape the surface it left.
	SelfIntersectOffset = 1e-3
)

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampVec3 clamps each component of v to [lo, hi].
func ClampVec3(v Vec3, lo, hi float64) Vec3 {
	return Vec3{Clamp(v[0], lo, hi), Clamp(v[1], lo, hi), Clamp(v[2], lo, hi)}
}

// Hadamard is the component-wise (Hadamard) product of two vectors, used
// throughout shading to combine a surface color with a light's color.
func Hadamard(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// NearlyEqual compares a and b using a relative error, falling back to an
// absolute comparison when one operand is (near) zero.
func NearlyEqual(a, b float64) bool {
	const tol = 1e-9
	diff := gomath.Abs(a - b)
	if diff < tol {
		return true
	}
	largest := gomath.Max(gomath.Abs(a), gomath.Abs(b))
	return diff <= largest*tol
}

// Reflect reflects incident vector v about unit normal n, following the
// GLSL convention reflect(I, N) = I - 2*dot(N,I)*N.
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * n.Dot(v)))
}

// Refract bends incident vector v across the boundary with unit normal n
// using relative index of refraction eta = ior_from/ior_to, following the
// GLSL convention. When the ray undergoes total internal reflection, the
// returned vector's first component is NaN — callers test with
// IsImaginary rather than a second return value, matching the spec's
// sentinel-value failure semantics.
func Refract(v, n Vec3, eta float64) Vec3 {
	d := n.Dot(v)
	k := 1.0 - eta*eta*(1.0-d*d)
	if k < 0 {
		return Vec3{gomath.NaN(), gomath.NaN(), gomath.NaN()}
	}
	return v.Mul(eta).Sub(n.Mul(eta*d + gomath.Sqrt(k)))
}

// IsImaginary reports whether v is the TIR sentinel returned by Refract.
func IsImaginary(v Vec3) bool {
	return gomath.IsNaN(v[0])
}

// IntersectUnitSphere solves the unit sphere (centered at the origin,
// radius 1) in the primitive's local frame against a ray already expressed
// in that frame. It returns the smallest nonnegative root within
// tolerance, or ok=false.
func IntersectUnitSphere(localStart, localDir Vec3) (t float64, ok bool) {
	a := localDir.Dot(localDir)
	if a == 0 {
		return 0, false
	}
	b := 2 * localStart.Dot(localDir)
	c := localStart.Dot(localStart) - 1
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := gomath.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 >= -Epsilon {
		if t0 < 0 {
			t0 = 0
		}
		return t0, true
	}
	if t1 >= -Epsilon {
		if t1 < 0 {
			t1 = 0
		}
		return t1, true
	}
	return 0, false
}

// IntersectUnitPlane solves the z=0 plane in the primitive's local frame
// against a ray already expressed in that frame. Grazing rays
// (|dir.z| < Epsilon) and negative t are rejected.
func IntersectUnitPlane(localStart, localDir Vec3) (t float64, ok bool) {
	denom := localDir[2]
	if gomath.Abs(denom) < Epsilon {
		return 0, false
	}
	t = -localStart[2] / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
