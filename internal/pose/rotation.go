package pose

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateLenSq is the squared length below which a direction is treated
// as having no meaningful orientation.
const degenerateLenSq = 1e-12

func Clamp01(x float64) float64 {
	return mgl64.Clamp(x, 0, 1)
}

// Slerp interpolates from a to b along the shortest arc. t is clamped to
// [0,1]. mgl64.QuatSlerp does not flip hemispheres, so b is negated first
// when the two rotations lie on opposite sides.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	switch t {
	case 0:
		return a.Normalize()
	case 1:
		return b.Normalize()
	}
	return mgl64.QuatSlerp(a, b, t)
}

// FromTo returns the minimal rotation taking direction from onto direction
// to. Zero-length inputs yield the identity.
func FromTo(from, to mgl64.Vec3) mgl64.Quat {
	if from.LenSqr() < degenerateLenSq || to.LenSqr() < degenerateLenSq {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(from, to).Normalize()
}

// Angle is the rotation angle in radians between two orientations, in [0, π].
// It is taken from the relative rotation with atan2, which stays exact for
// nearly equal orientations where acos of the dot product does not.
func Angle(a, b mgl64.Quat) float64 {
	d := a.Normalize().Conjugate().Mul(b.Normalize())
	return 2 * math.Atan2(d.V.Len(), math.Abs(d.W))
}

// AxisAngle returns the rotation angle of q about its own axis, in [0, π].
func AxisAngle(q mgl64.Quat) float64 {
	return Angle(mgl64.QuatIdent(), q)
}
