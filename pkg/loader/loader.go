// Package loader reads a scene description from disk, mirroring the
// teacher's pkg/loader.LoadScene shape (a JSON config struct per entity,
// unmarshaled and converted into the runtime model) but targeting the
// matrix-based scene.Scene model instead of the teacher's Center/Radius
// shapes.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"photon/pkg/camera"
	rtmath "photon/pkg/math"
	"photon/pkg/render"
	"photon/pkg/scene"
)

// CameraConfig is the on-disk camera description.
type CameraConfig struct {
	Eye    [3]float64 `json:"eye"`
	Target [3]float64 `json:"target"`
	Up     [3]float64 `json:"up"`
	Fov    float64    `json:"fov"`
	Aspect float64    `json:"aspect,omitempty"`
	Near   float64    `json:"near,omitempty"`
	Far    float64    `json:"far,omitempty"`
}

// LightConfig is the on-disk light description.
type LightConfig struct {
	Position [4]float64 `json:"position"`
	Ambient  [3]float64 `json:"ambient,omitempty"`
	Diffuse  [3]float64 `json:"diffuse,omitempty"`
	Specular [3]float64 `json:"specular,omitempty"`
}

// MaterialConfig is the on-disk material description.
type MaterialConfig struct {
	Color    [3]float64 `json:"color,omitempty"`
	Ambient  [3]float64 `json:"ambient,omitempty"`
	Specular [3]float64 `json:"specular,omitempty"`

	KAmbient       float64 `json:"kAmbient,omitempty"`
	KDiffuse       float64 `json:"kDiffuse,omitempty"`
	KSpecular      float64 `json:"kSpecular,omitempty"`
	KReflective    float64 `json:"kReflective,omitempty"`
	KTransmittance float64 `json:"kTransmittance,omitempty"`
	Shininess      float64 `json:"shininess,omitempty"`
	Ior            float64 `json:"ior,omitempty"`
}

// PrimitiveConfig is the on-disk primitive description: a type tag, a
// 16-entry column-major model matrix, a material, and a visibility target.
type PrimitiveConfig struct {
	Type     string         `json:"type"`
	Model    [16]float64    `json:"model"`
	Material MaterialConfig `json:"material"`
	Target   string         `json:"target,omitempty"`
}

// SceneDocument is the full on-disk scene description, per SPEC_FULL.md
// §3.1.
type SceneDocument struct {
	Camera     CameraConfig      `json:"camera"`
	AmbientIOR float64           `json:"ambientIOR,omitempty"`
	Lights     []LightConfig     `json:"lights"`
	Primitives []PrimitiveConfig `json:"primitives"`
}

// LoadScene reads and parses path, returning a ready-to-render scene.Scene
// and the camera it was described with.
func LoadScene(path string) (*scene.Scene, *camera.Camera, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: read scene file: %w", err)
	}

	var doc SceneDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("loader: parse scene file: %w", err)
	}

	aspect := doc.Camera.Aspect
	if aspect == 0 {
		aspect = 1
	}
	near, far := doc.Camera.Near, doc.Camera.Far
	if near == 0 {
		near = 0.1
	}
	if far == 0 {
		far = 100
	}

	eye := rtmath.Vec3(doc.Camera.Eye)
	target := rtmath.Vec3(doc.Camera.Target)
	up := rtmath.Vec3(doc.Camera.Up)

	cam := camera.NewLookAtCamera(eye, target, up, doc.Camera.Fov, aspect, near, far)

	ambientIOR := doc.AmbientIOR
	if ambientIOR == 0 {
		ambientIOR = scene.AmbientIOR
	}

	lights := make([]scene.Light, 0, len(doc.Lights))
	for _, lc := range doc.Lights {
		lights = append(lights, scene.Light{
			Position: rtmath.Vec4(lc.Position),
			Ambient:  rtmath.Vec3(lc.Ambient),
			Diffuse:  rtmath.Vec3(lc.Diffuse),
			Specular: rtmath.Vec3(lc.Specular),
		})
	}

	primitives := make([]*scene.Primitive, 0, len(doc.Primitives))
	for _, pc := range doc.Primitives {
		kind, err := parseKind(pc.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("loader: primitive %d: %w", len(primitives), err)
		}
		primitives = append(primitives, scene.NewPrimitive(
			kind,
			mgl64.Mat4(pc.Model),
			convertMaterial(pc.Material),
			parseTarget(pc.Target),
		))
	}

	return &scene.Scene{
		Primitives: primitives,
		Lights:     lights,
		CameraMV:   mgl64.LookAtV(eye, target, up).Inv(),
		AmbientIOR: ambientIOR,
	}, cam, nil
}

func parseKind(t string) (scene.Kind, error) {
	switch t {
	case "sphere":
		return scene.Sphere, nil
	case "plane":
		return scene.Plane, nil
	default:
		return 0, fmt.Errorf("unknown primitive type %q", t)
	}
}

func parseTarget(t string) scene.Target {
	switch t {
	case "raytracer":
		return scene.RayTracer
	case "preview":
		return scene.Preview
	default:
		return scene.Both
	}
}

func convertMaterial(mc MaterialConfig) scene.Material {
	mtl := scene.DefaultMaterial()
	if mc.Color != [3]float64{} {
		mtl.Color = rtmath.Vec3(mc.Color)
	}
	if mc.Ambient != [3]float64{} {
		mtl.Ambient = rtmath.Vec3(mc.Ambient)
	}
	if mc.Specular != [3]float64{} {
		mtl.Specular = rtmath.Vec3(mc.Specular)
	}
	mtl.KAmbient = orDefault(mc.KAmbient, mtl.KAmbient)
	mtl.KDiffuse = orDefault(mc.KDiffuse, mtl.KDiffuse)
	mtl.KSpecular = mc.KSpecular
	mtl.KReflective = mc.KReflective
	mtl.KTransmittance = mc.KTransmittance
	mtl.Shininess = mc.Shininess
	mtl.Ior = orDefault(mc.Ior, mtl.Ior)
	return mtl
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// DefaultConfig is the CLI's starting render configuration, per spec.md §6:
// width=1920, height=1080, ss_antialias=false, ss_factor=2, max_samples=100.
func DefaultConfig() render.Config {
	return render.Config{
		Width:       1920,
		Height:      1080,
		SSAntialias: false,
		SSFactor:    2,
		MaxSamples:  100,
	}
}
