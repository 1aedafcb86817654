package main

import (
	"crypto/rand"
	"encoding/binary"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"photon/pkg/camera"
	rtmath "photon/pkg/math"
	"photon/pkg/scene"
)

// defaultScene builds the scene rendered when no -scene file is given: a
// diffuse red sphere and a mirror sphere over a grey floor plane, lit by
// one positional white light, matching the shape of the teacher's
// cmd/render sampleScene constant but expressed directly as scene.Scene
// and scene.Primitive values instead of a JSON literal.
func defaultScene() (*scene.Scene, *camera.Camera) {
	eye := rtmath.Vec3{0, 1, 5}
	target := rtmath.Vec3{0, 0, 0}
	up := rtmath.Vec3{0, 1, 0}
	previewAspect := float64(previewWidth) / float64(previewHeight)

	cam := camera.NewLookAtCamera(eye, target, up, 60, previewAspect, 0.1, 100)

	red := scene.DefaultMaterial()
	red.Color = rtmath.Vec3{0.8, 0.15, 0.15}
	redSphere := scene.NewPrimitive(scene.Sphere, mgl64.Translate3D(-1.1, 0, 0), red, scene.Both)

	mirror := scene.DefaultMaterial()
	mirror.KAmbient, mirror.KDiffuse = 0.02, 0.1
	mirror.KReflective = 0.9
	mirror.KSpecular = 0.6
	mirror.Shininess = 64
	mirrorSphere := scene.NewPrimitive(scene.Sphere, mgl64.Translate3D(1.3, 0, -0.5), mirror, scene.Both)

	floor := scene.DefaultMaterial()
	floor.Color = rtmath.Vec3{0.6, 0.6, 0.65}
	floor.KSpecular = 0.1
	floor.Shininess = 8
	// The plane's local frame has normal (0,0,1); rotating -90deg about X
	// carries it to world +Y, then the translation drops it to y=-1.
	floorModel := mgl64.Translate3D(0, -1, 0).Mul4(mgl64.HomogRotate3DX(-gomath.Pi / 2))
	floorPlane := scene.NewPrimitive(scene.Plane, floorModel, floor, scene.Both)

	light := scene.Light{
		Position: rtmath.NewPoint(3, 4, 4),
		Ambient:  rtmath.Vec3{1, 1, 1},
		Diffuse:  rtmath.Vec3{1, 1, 1},
		Specular: rtmath.Vec3{1, 1, 1},
	}

	sc := &scene.Scene{
		Primitives: []*scene.Primitive{redSphere, mirrorSphere, floorPlane},
		Lights:     []scene.Light{light},
		CameraMV:   mgl64.LookAtV(eye, target, up).Inv(),
		AmbientIOR: scene.AmbientIOR,
	}
	return sc, cam
}

// newSeed draws a non-zero seed from the OS entropy source for the
// controller's PRNG, per spec.md §5: "the PRNG ... is owned by the
// controller (one source, seeded from a system entropy source)".
func newSeed() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	seed := binary.LittleEndian.Uint32(buf[:])
	if seed == 0 {
		return 1
	}
	return seed
}
