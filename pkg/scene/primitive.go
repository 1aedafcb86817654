package scene

import rtmath "photon/pkg/math"

// Target is a visibility bitmask: a primitive may be visible to the
// offline ray tracer, the interactive preview, or both.
type Target uint8

const (
	RayTracer Target = 1 << iota
	Preview
)

// Both is shorthand for RayTracer|Preview.
const Both = RayTracer | Preview

// Visible reports whether t includes want.
func (t Target) Visible(want Target) bool { return t&want != 0 }

// Kind distinguishes the primitive's analytic shape. Primitive is a closed
// tagged variant, not an open inheritance hierarchy: only Sphere and Plane
// exist, and both are expressible with the same fields (a model transform
// plus a material).
type Kind int

const (
	Sphere Kind = iota
	Plane
)

// Hit is the nearest valid intersection record along a ray.
type Hit struct {
	T            float64
	NormalWorld  rtmath.Vec3
	Primitive    *Primitive
}

// Primitive is an analytic geometric object: a unit sphere or a z=0 plane
// in its own local frame, placed in the world by Model. ModelInv and
// NormalMat are derived from Model at construction; after any mutation of
// Model both derived matrices must be recomputed before the next
// intersection test (SetModel does this).
type Primitive struct {
	Kind     Kind
	Material Material
	Target   Target

	Model     rtmath.Mat4
	ModelInv  rtmath.Mat4
	NormalMat rtmath.Mat4
}

// NewPrimitive constructs a primitive and derives its inverse/normal
// matrices from the given model transform.
func NewPrimitive(kind Kind, model rtmath.Mat4, mtl Material, target Target) *Primitive {
	p := &Primitive{Kind: kind, Material: mtl, Target: target}
	p.SetModel(model)
	return p
}

// SetModel replaces the primitive's model transform and recomputes its
// derived inverse and normal matrices.
func (p *Primitive) SetModel(model rtmath.Mat4) {
	p.Model = model
	inv := model.Inv()
	p.ModelInv = inv
	p.NormalMat = inv.Transpose()
}

// Intersect finds the nearest valid hit of ray against p, in world space.
func (p *Primitive) Intersect(ray rtmath.Ray) (Hit, bool) {
	localStart := rtmath.TransformPoint(p.ModelInv, ray.Start)
	localDir := rtmath.TransformDir(p.ModelInv, ray.Dir)

	var t float64
	var ok bool
	var localNormal rtmath.Vec3

	switch p.Kind {
	case Sphere:
		t, ok = rtmath.IntersectUnitSphere(localStart, localDir)
		if ok {
			localHit := localStart.Add(localDir.Mul(t))
			localNormal = localHit
		}
	case Plane:
		t, ok = rtmath.IntersectUnitPlane(localStart, localDir)
		if ok {
			localNormal = rtmath.Vec3{0, 0, 1}
		}
	}
	if !ok {
		return Hit{}, false
	}

	worldNormal := rtmath.TransformDir(p.NormalMat, rtmath.Dir4From3(localNormal)).Normalize()
	return Hit{T: t, NormalWorld: worldNormal, Primitive: p}, true
}

// IntersectT returns only the t of the nearest hit, or a negative value
// when there is no hit. The shader's shadow test does not call it; it goes
// through Scene.NearestExcept instead.
func (p *Primitive) IntersectT(ray rtmath.Ray) float64 {
	if hit, ok := p.Intersect(ray); ok {
		return hit.T
	}
	return -1
}
