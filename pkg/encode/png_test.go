package encode

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteImageRoundTripsPixels(t *testing.T) {
	const w, h = 2, 2
	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 0, 0, 0, 0,
	}

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, (PNGEncoder{}).WriteImage(path, pix, w, h))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, w, img.Bounds().Dx())
	require.Equal(t, h, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	require.Equal(t, uint32(255), r>>8)
	require.Equal(t, uint32(0), g>>8)
	require.Equal(t, uint32(0), b>>8)
	require.Equal(t, uint32(255), a>>8)
}

func TestWriteImageFailsOnUnwritablePath(t *testing.T) {
	err := (PNGEncoder{}).WriteImage(filepath.Join(t.TempDir(), "missing-dir", "out.png"), make([]byte, 4), 1, 1)
	require.Error(t, err)
}
