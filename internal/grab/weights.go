package grab

import (
	"math"

	"github.com/san-kum/grabsim/internal/pose"
)

// ProximityFactor is 1 when a manipulator sits on its contact point and
// falls linearly in squared distance to 0 at the proximity radius. It is
// exactly 0 at and beyond the radius.
func (s *Solver) ProximityFactor(distSq float64) float64 {
	r := s.params.ProximityRadius
	if r <= 0 || math.Sqrt(distSq) >= r {
		return 0
	}
	return 1 - pose.Clamp01(distSq/(r*r))
}

// AgreementFactor maps the quaternion dot of two neighbouring raw rotations
// to [0,1]. With the defaults it is 0 up to dot 5/6 and reaches 1 at dot 1.
func (s *Solver) AgreementFactor(dot float64) float64 {
	return pose.Clamp01(dot*s.params.AgreementGain - s.params.AgreementBias)
}

// ForwardFactor penalises a manipulator whose forward axis has turned away
// from where it pointed at grab start.
func ForwardFactor(dot float64) float64 {
	return pose.Clamp01(dot)
}
