package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"photon/pkg/scene"
)

const sampleDoc = `{
  "camera": {"eye": [0, 0, 5], "target": [0, 0, 0], "up": [0, 1, 0], "fov": 60, "aspect": 1, "near": 0.1, "far": 50},
  "ambientIOR": 1.000293,
  "lights": [
    {"position": [0, 0, 10, 1], "ambient": [1, 1, 1], "diffuse": [1, 1, 1], "specular": [1, 1, 1]}
  ],
  "primitives": [
    {
      "type": "sphere",
      "model": [1, 0, 0, 0,  0, 1, 0, 0,  0, 0, 1, 0,  0, 0, 0, 1],
      "material": {"color": [1, 0, 0], "kDiffuse": 0.9, "kAmbient": 0.1, "ior": 1},
      "target": "both"
    },
    {
      "type": "plane",
      "model": [1, 0, 0, 0,  0, 1, 0, 0,  0, 0, 1, 0,  0, -1, 0, 1],
      "material": {"color": [0.5, 0.5, 0.5]},
      "target": "raytracer"
    }
  ]
}`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSceneParsesPrimitivesLightsAndCamera(t *testing.T) {
	path := writeTemp(t, sampleDoc)

	sc, cam, err := LoadScene(path)
	require.NoError(t, err)
	require.NotNil(t, cam)
	require.Len(t, sc.Primitives, 2)
	require.Len(t, sc.Lights, 1)
	require.InDelta(t, 1.000293, sc.AmbientIOR, 1e-9)

	require.Equal(t, scene.Sphere, sc.Primitives[0].Kind)
	require.Equal(t, scene.Both, sc.Primitives[0].Target)
	require.InDelta(t, 1.0, sc.Primitives[0].Material.Color[0], 1e-9)

	require.Equal(t, scene.Plane, sc.Primitives[1].Kind)
	require.Equal(t, scene.RayTracer, sc.Primitives[1].Target)
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, _, err := LoadScene(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadSceneMalformedJSON(t *testing.T) {
	path := writeTemp(t, "{not json")
	_, _, err := LoadScene(path)
	require.Error(t, err)
}

func TestLoadSceneUnknownPrimitiveType(t *testing.T) {
	path := writeTemp(t, `{"camera":{"eye":[0,0,1],"target":[0,0,0],"up":[0,1,0],"fov":60},
		"primitives":[{"type":"cube","model":[1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1]}]}`)
	_, _, err := LoadScene(path)
	require.Error(t, err)
}

func TestDefaultConfigMatchesSpecDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1920, cfg.Width)
	require.Equal(t, 1080, cfg.Height)
	require.False(t, cfg.SSAntialias)
	require.Equal(t, 2, cfg.SSFactor)
	require.Equal(t, 100, cfg.MaxSamples)
}
