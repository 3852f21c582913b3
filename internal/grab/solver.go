package grab

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

const (
	DefaultDamping         = 0.4
	DefaultProximityRadius = 0.1 // metres
	DefaultAgreementGain   = 6.0
	DefaultAgreementBias   = 5.0
)

// Params tunes the multi-attachment blend.
type Params struct {
	// Damping is the fraction of the way the rotation moves toward the
	// blended target each tick.
	Damping float64 `yaml:"damping"`
	// ProximityRadius is the distance between a manipulator and its contact
	// point at which the manipulator's own rotation stops counting.
	ProximityRadius float64 `yaml:"proximity_radius"`
	// Agreement factor is clamp01(dot*AgreementGain - AgreementBias).
	AgreementGain float64 `yaml:"agreement_gain"`
	AgreementBias float64 `yaml:"agreement_bias"`
}

func DefaultParams() Params {
	return Params{
		Damping:         DefaultDamping,
		ProximityRadius: DefaultProximityRadius,
		AgreementGain:   DefaultAgreementGain,
		AgreementBias:   DefaultAgreementBias,
	}
}

// Solution is a solved target pose with the blend diagnostics.
type Solution struct {
	Pose pose.Pose
	// Undamped is the folded rotation before damping.
	Undamped mgl64.Quat
	// Weights holds each attachment's blend weight. Nil for a single attachment.
	Weights []float64
	// Offset is the mean manipulator-to-contact displacement applied to the
	// position. Zero for a single attachment.
	Offset mgl64.Vec3
}

type Solver struct {
	params Params
}

func NewSolver(p Params) *Solver {
	return &Solver{params: p}
}

func (s *Solver) Params() Params { return s.params }

// Solve returns the target pose for an object at current held by
// attachments. attachments must not be empty; Solve panics otherwise.
func (s *Solver) Solve(attachments []*Attachment, current pose.Pose) Solution {
	switch len(attachments) {
	case 0:
		panic(ErrNoAttachments)
	case 1:
		p := SolveSingle(attachments[0])
		return Solution{Pose: p, Undamped: p.Rotation}
	}
	return s.blend(attachments, current)
}

// SolveSingle moves the object rigidly with its only manipulator.
func SolveSingle(a *Attachment) pose.Pose {
	hand := a.manipulator.Pose()
	return pose.Pose{
		Position: hand.TransformPoint(a.capture.LocalOffset),
		Rotation: a.RawRotation(hand).Normalize(),
	}
}

// blend folds the attachments in order. The attachment before index 0 is
// the last one, so every attachment is compared against a neighbour.
func (s *Solver) blend(attachments []*Attachment, obj pose.Pose) Solution {
	n := len(attachments)
	hands := make([]pose.Pose, n)
	for i, a := range attachments {
		hands[i] = a.manipulator.Pose()
	}

	weights := make([]float64, n)
	last := attachments[n-1]
	prevSurface := last.surface
	prevHand := obj.InverseTransformPoint(hands[n-1].Position)
	prevRaw := last.RawRotation(hands[n-1])

	rot := obj.Rotation
	for i, a := range attachments {
		hand := hands[i]
		raw := a.RawRotation(hand)
		localHand := obj.InverseTransformPoint(hand.Position)

		before := a.surface.Sub(prevSurface)
		after := localHand.Sub(prevHand)
		motion := obj.Rotation.Mul(pose.FromTo(before, after))

		distSq := obj.TransformPoint(a.surface).Sub(hand.Position).LenSqr()
		w := s.ProximityFactor(distSq) *
			s.AgreementFactor(raw.Dot(prevRaw)) *
			ForwardFactor(hand.Forward().Dot(obj.TransformDirection(a.capture.LocalForward)))
		weights[i] = w

		rot = pose.Slerp(rot, pose.Slerp(motion, raw, w), 1/float64(i+1))

		prevSurface, prevHand, prevRaw = a.surface, localHand, raw
	}

	final := pose.Slerp(obj.Rotation, rot, s.params.Damping)

	// Position uses the pose from before this tick's rotation update.
	var sum mgl64.Vec3
	for i, a := range attachments {
		sum = sum.Add(hands[i].Position.Sub(obj.TransformPoint(a.surface)))
	}
	offset := sum.Mul(1 / float64(n))

	return Solution{
		Pose:     pose.New(obj.Position.Add(offset), final),
		Undamped: rot,
		Weights:  weights,
		Offset:   offset,
	}
}
