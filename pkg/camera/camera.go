// Package camera builds world-space camera rays from pixel coordinates by
// unprojecting the near and far planes, mirroring the shape of the
// teacher's PerspectiveCamera.Project helper but delegating the actual
// unprojection to a collaborator interface, as spec.md requires: the ray
// tracer core only needs a view->world unprojection function, not an
// embedded OpenGL/GLU implementation of it.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	rtmath "photon/pkg/math"
)

// Unprojector is the external collaborator that turns a window-space
// coordinate (x, y, z in [0,1] for z) back into a world-space point, given
// a modelview and projection matrix and a viewport. The default
// implementation is backed by mgl64.UnProject; a preview/editor could
// supply its own (e.g. one that accounts for a trackball-adjusted view).
type Unprojector interface {
	Unproject(win rtmath.Vec3, modelview, proj rtmath.Mat4, x, y, width, height int) (rtmath.Vec3, error)
}

// MglUnprojector is the default Unprojector, backed by mathgl.
type MglUnprojector struct{}

// Unproject implements Unprojector using mgl64.UnProject.
func (MglUnprojector) Unproject(win rtmath.Vec3, modelview, proj rtmath.Mat4, x, y, width, height int) (rtmath.Vec3, error) {
	return mgl64.UnProject(win, modelview, proj, x, y, width, height)
}

// Camera holds the view and projection transforms for one render and the
// preview viewport's aspect ratio, which is used only to size the
// unprojection viewport consistently with the interactive preview window.
type Camera struct {
	Eye           rtmath.Vec3
	View          rtmath.Mat4
	Proj          rtmath.Mat4
	PreviewAspect float64
	Unproject     Unprojector
}

// NewLookAtCamera builds a perspective camera looking from eye toward
// target, matching the teacher's NewLookAtCamera constructor shape.
func NewLookAtCamera(eye, target, up rtmath.Vec3, fovDegrees, previewAspect, near, far float64) *Camera {
	view := mgl64.LookAtV(eye, target, up)
	proj := mgl64.Perspective(fovDegrees*gomath.Pi/180.0, previewAspect, near, far)
	return &Camera{
		Eye:           eye,
		View:          view,
		Proj:          proj,
		PreviewAspect: previewAspect,
		Unproject:     MglUnprojector{},
	}
}

// PixelRay builds the world-space ray through output pixel (px, py) of a
// W x H render, per spec.md's pixel_to_ray: y is flipped to an
// image-bottom origin, and the near/far planes are unprojected using a
// viewport sized from the render's own W (so the offline grid's
// resolution, not the preview window's, sets the ray density); only the
// aspect ratio comes from the preview viewport.
func (c *Camera) PixelRay(px, py float64, width, height int) rtmath.Ray {
	flippedY := float64(height) - py
	viewportHeight := int(gomath.Round(float64(width) / c.PreviewAspect))

	near, errN := c.Unproject.Unproject(rtmath.Vec3{px, flippedY, 0}, c.View, c.Proj, 0, 0, width, viewportHeight)
	far, errF := c.Unproject.Unproject(rtmath.Vec3{px, flippedY, 1}, c.View, c.Proj, 0, 0, width, viewportHeight)
	if errN != nil || errF != nil {
		// A degenerate view/projection pair (e.g. a zero-volume frustum)
		// cannot produce a usable ray; fall back to a ray straight out of
		// the eye along the camera's forward axis so the caller still gets
		// a well-formed Ray rather than having to propagate an error
		// through every pixel of the grid.
		fwd := c.forward()
		return rtmath.Ray{Start: rtmath.Point4From3(c.Eye), Dir: rtmath.Dir4From3(fwd)}
	}

	dir := far.Sub(near).Normalize()
	return rtmath.Ray{Start: rtmath.Point4From3(near), Dir: rtmath.Dir4From3(dir)}
}

func (c *Camera) forward() rtmath.Vec3 {
	// Row 2 of the view matrix (in mgl64's column-major storage, indices
	// 2, 6, 10) is the camera's -forward axis.
	return rtmath.Vec3{-c.View[2], -c.View[6], -c.View[10]}.Normalize()
}
