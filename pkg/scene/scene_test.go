package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	rtmath "photon/pkg/math"
)

func TestSphereIntersectHitsAndMisses(t *testing.T) {
	p := NewPrimitive(Sphere, mgl64.Ident4(), DefaultMaterial(), Both)

	ray := rtmath.Ray{Start: rtmath.NewPoint(0, 0, -5), Dir: rtmath.NewDir(0, 0, 1)}
	hit, ok := p.Intersect(ray)
	require.True(t, ok)
	require.InDelta(t, 4.0, hit.T, 1e-9)
	require.InDelta(t, 1.0, hit.NormalWorld.Len(), 1e-9)
	require.InDelta(t, -1.0, hit.NormalWorld[2], 1e-9)

	miss := rtmath.Ray{Start: rtmath.NewPoint(5, 5, -5), Dir: rtmath.NewDir(0, 0, 1)}
	_, ok = p.Intersect(miss)
	require.False(t, ok)
}

func TestSphereIntersectHonorsModelTransform(t *testing.T) {
	model := mgl64.Translate3D(3, 0, 0)
	p := NewPrimitive(Sphere, model, DefaultMaterial(), Both)

	ray := rtmath.Ray{Start: rtmath.NewPoint(3, 0, -5), Dir: rtmath.NewDir(0, 0, 1)}
	hit, ok := p.Intersect(ray)
	require.True(t, ok)
	require.InDelta(t, 4.0, hit.T, 1e-9)
}

func TestPlaneIntersectRejectsGrazingAndBehind(t *testing.T) {
	p := NewPrimitive(Plane, mgl64.Ident4(), DefaultMaterial(), Both)

	grazing := rtmath.Ray{Start: rtmath.NewPoint(0, 0, 1), Dir: rtmath.NewDir(1, 0, 0)}
	_, ok := p.Intersect(grazing)
	require.False(t, ok)

	behind := rtmath.Ray{Start: rtmath.NewPoint(0, 0, -5), Dir: rtmath.NewDir(0, 0, -1)}
	_, ok = p.Intersect(behind)
	require.False(t, ok)

	hitRay := rtmath.Ray{Start: rtmath.NewPoint(0, 0, 5), Dir: rtmath.NewDir(0, 0, -1)}
	hit, ok := p.Intersect(hitRay)
	require.True(t, ok)
	require.InDelta(t, 5.0, hit.T, 1e-9)
	require.InDelta(t, 1.0, hit.NormalWorld[2], 1e-9)
}

func TestSceneNearestPicksClosestVisibleHit(t *testing.T) {
	near := NewPrimitive(Sphere, mgl64.Translate3D(0, 0, -2), DefaultMaterial(), Both)
	far := NewPrimitive(Sphere, mgl64.Translate3D(0, 0, -10), DefaultMaterial(), Both)
	previewOnly := NewPrimitive(Sphere, mgl64.Translate3D(0, 0, -1), DefaultMaterial(), Preview)

	s := &Scene{Primitives: []*Primitive{far, near, previewOnly}, AmbientIOR: AmbientIOR}

	ray := rtmath.Ray{Start: rtmath.NewPoint(0, 0, 0), Dir: rtmath.NewDir(0, 0, -1)}
	hit, ok := s.Nearest(ray, RayTracer)
	require.True(t, ok)
	require.Same(t, near, hit.Primitive)
}

func TestSceneEmptyNearestMisses(t *testing.T) {
	s := &Scene{AmbientIOR: AmbientIOR}
	ray := rtmath.Ray{Start: rtmath.NewPoint(0, 0, 0), Dir: rtmath.NewDir(0, 0, -1)}
	_, ok := s.Nearest(ray, RayTracer)
	require.False(t, ok)
}

func TestLightDirectionalVsPositional(t *testing.T) {
	dirLight := Light{Position: rtmath.Vec4{0, 0, 1, 0}}
	require.True(t, dirLight.IsDirectional())

	posLight := Light{Position: rtmath.Vec4{0, 0, 10, 1}}
	require.False(t, posLight.IsDirectional())

	dir, _, positional := dirLight.DirectionFrom(mgl64.Ident4(), rtmath.Vec3{0, 0, 0})
	require.False(t, positional)
	require.InDelta(t, 1.0, dir.Len(), 1e-9)
}
