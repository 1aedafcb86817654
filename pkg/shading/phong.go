package shading

import (
	gomath "math"

	rtmath "photon/pkg/math"
	"photon/pkg/scene"
)

// Shade evaluates the Phong illumination model at a hit point, folding in
// the already-traced reflection and refraction colors for this bounce
// (reflectColor/refractColor come from the caller's recursive cast_ray
// calls, or are zero when the material has no reflective/transmissive
// component). It sums one ambient+diffuse+specular+refraction term per
// light, matching the teacher's per-light accumulation in
// phong.ShadedColor generalized from a single hardcoded light to an
// arbitrary light list.
func Shade(s *scene.Scene, p, normal, eyeDir rtmath.Vec3, mtl scene.Material, hitPrim *scene.Primitive, reflectColor, refractColor rtmath.Vec3) rtmath.Vec3 {
	var color rtmath.Vec3
	shadowOrigin := rtmath.Point4From3(p.Add(normal.Mul(rtmath.SelfIntersectOffset)))

	for _, light := range s.Lights {
		lightDir, lightWorldPos, positional := light.DirectionFrom(s.CameraMV, p)
		ambient := rtmath.Hadamard(mtl.Ambient, light.Ambient).Mul(mtl.KAmbient)

		kd := gomath.Max(normal.Dot(lightDir), 0)
		if kd <= 0 || inShadow(s, shadowOrigin, lightDir, lightWorldPos, positional, hitPrim) {
			color = color.Add(ambient)
			continue
		}

		diffuse := rtmath.Hadamard(light.Diffuse, mtl.Color).Mul(mtl.KDiffuse * kd)

		reflectedL := rtmath.Reflect(lightDir, normal).Mul(-1)
		specAngle := gomath.Max(reflectedL.Dot(eyeDir), 0)
		ks := gomath.Pow(specAngle, mtl.Shininess)

		var specular rtmath.Vec3
		if kd >= rtmath.Epsilon {
			fromMirror := reflectColor.Mul(mtl.KReflective)
			fromHighlight := rtmath.Hadamard(light.Specular, mtl.Specular).Mul(ks * mtl.KSpecular)
			specular = rtmath.ClampVec3(rtmath.Hadamard(mtl.Specular, fromMirror).Add(fromHighlight), 0, 1)
		}

		refraction := refractColor.Mul(mtl.KDiffuse * mtl.KTransmittance)

		color = color.Add(ambient).Add(diffuse).Add(specular).Add(refraction)
	}

	return color
}

// inShadow reports whether the light at lightDir/lightWorldPos is occluded
// from shadowOrigin by any primitive other than hitPrim. Directional lights
// are tested against an effectively infinite segment; positional lights
// are tested only up to the light's own distance, so an occluder beyond
// the light does not cast a shadow.
func inShadow(s *scene.Scene, shadowOrigin rtmath.Vec4, lightDir, lightWorldPos rtmath.Vec3, positional bool, hitPrim *scene.Primitive) bool {
	shadowRay := rtmath.Ray{Start: shadowOrigin, Dir: rtmath.Dir4From3(lightDir)}
	hit, ok := s.NearestExcept(shadowRay, scene.RayTracer, hitPrim)
	if !ok || hit.T < rtmath.Epsilon {
		return false
	}
	if !positional {
		return true
	}
	distToLight := lightWorldPos.Sub(rtmath.Vec3From4(shadowOrigin)).Len()
	return hit.T < distToLight
}
