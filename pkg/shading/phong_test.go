package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	rtmath "photon/pkg/math"
	"photon/pkg/scene"
)

func TestShadeOccludedLightContributesOnlyAmbient(t *testing.T) {
	occluder := scene.NewPrimitive(scene.Sphere, mgl64.Translate3D(0, 0, 2), scene.DefaultMaterial(), scene.Both)
	light := scene.Light{Position: rtmath.NewPoint(0, 0, 5), Ambient: rtmath.Vec3{1, 1, 1}, Diffuse: rtmath.Vec3{1, 1, 1}, Specular: rtmath.Vec3{1, 1, 1}}
	s := &scene.Scene{
		Primitives: []*scene.Primitive{occluder},
		Lights:     []scene.Light{light},
		CameraMV:   mgl64.Ident4(),
		AmbientIOR: scene.AmbientIOR,
	}

	mtl := scene.DefaultMaterial()
	mtl.Color = rtmath.Vec3{1, 0, 0}
	mtl.KAmbient, mtl.KDiffuse, mtl.KSpecular = 0.2, 0.7, 0.5

	got := Shade(s, rtmath.Vec3{0, 0, 0}, rtmath.Vec3{0, 0, 1}, rtmath.Vec3{0, 0, 1}, mtl, nil, rtmath.Vec3{}, rtmath.Vec3{})

	want := rtmath.Hadamard(mtl.Ambient, light.Ambient).Mul(mtl.KAmbient)
	require.InDelta(t, want[0], got[0], 1e-9)
	require.InDelta(t, want[1], got[1], 1e-9)
	require.InDelta(t, want[2], got[2], 1e-9)
}

func TestShadeUnoccludedLightAddsDiffuseAndSpecular(t *testing.T) {
	light := scene.Light{Position: rtmath.NewPoint(0, 0, 5), Ambient: rtmath.Vec3{1, 1, 1}, Diffuse: rtmath.Vec3{1, 1, 1}, Specular: rtmath.Vec3{1, 1, 1}}
	s := &scene.Scene{
		Lights:     []scene.Light{light},
		CameraMV:   mgl64.Ident4(),
		AmbientIOR: scene.AmbientIOR,
	}

	mtl := scene.DefaultMaterial()
	mtl.Color = rtmath.Vec3{1, 0, 0}
	mtl.KAmbient, mtl.KDiffuse, mtl.KSpecular, mtl.Shininess = 0.2, 0.7, 0.5, 32

	got := Shade(s, rtmath.Vec3{0, 0, 0}, rtmath.Vec3{0, 0, 1}, rtmath.Vec3{0, 0, 1}, mtl, nil, rtmath.Vec3{}, rtmath.Vec3{})

	ambientOnly := mtl.KAmbient
	require.Greater(t, got[0], ambientOnly, "an unoccluded, facing light must add diffuse/specular beyond ambient")
}

// TestShadeGrazingLightSuppressesSpecular checks the guard at phong.go's
// specular branch: a light whose incidence angle is so close to the
// surface (kd just under Epsilon) contributes no specular or mirror term,
// even when the material is fully reflective, avoiding a bright terminator
// seam at the shadow line.
func TestShadeGrazingLightSuppressesSpecular(t *testing.T) {
	light := scene.Light{Position: rtmath.NewPoint(1, 0, 1e-8), Ambient: rtmath.Vec3{}, Diffuse: rtmath.Vec3{1, 1, 1}, Specular: rtmath.Vec3{1, 1, 1}}
	s := &scene.Scene{
		Lights:     []scene.Light{light},
		CameraMV:   mgl64.Ident4(),
		AmbientIOR: scene.AmbientIOR,
	}

	mtl := scene.DefaultMaterial()
	mtl.KAmbient, mtl.KDiffuse, mtl.KSpecular, mtl.KReflective, mtl.Shininess = 0, 1, 1, 1, 1

	got := Shade(s, rtmath.Vec3{0, 0, 0}, rtmath.Vec3{0, 0, 1}, rtmath.Vec3{0, 0, 1}, mtl, nil, rtmath.Vec3{1, 1, 1}, rtmath.Vec3{})

	require.Less(t, got[0], 0.05, "a grazing light must not leak the reflected color through the specular term")
}
