package grab

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/pose"
)

// Manipulator is anything with a live world pose that can hold an object.
type Manipulator interface {
	Pose() pose.Pose
}

// Capture is the manipulator/object relationship frozen at grab start.
type Capture struct {
	// LocalOffset is the object position in the manipulator frame.
	LocalOffset mgl64.Vec3
	// LocalOffsetRotation takes the manipulator rotation to the object rotation.
	LocalOffsetRotation mgl64.Quat
	// LocalForward is the manipulator forward axis in object space.
	LocalForward mgl64.Vec3
}

// CaptureAt computes the capture for a manipulator at hand holding an object at obj.
func CaptureAt(hand, obj pose.Pose) Capture {
	return Capture{
		LocalOffset:         hand.InverseTransformPoint(obj.Position),
		LocalOffsetRotation: hand.Rotation.Inverse().Mul(obj.Rotation).Normalize(),
		LocalForward:        obj.InverseTransformDirection(hand.Forward()),
	}
}

// Attachment is one manipulator's hold on an object. The capture is fixed
// for the attachment's lifetime; only the nearest surface point is refreshed,
// and only between solves.
type Attachment struct {
	manipulator Manipulator
	capture     Capture
	surface     mgl64.Vec3
}

// NewAttachment starts a hold: the capture is taken from the manipulator's
// current pose and the object's pose. surfacePoint is in object space.
func NewAttachment(m Manipulator, obj pose.Pose, surfacePoint mgl64.Vec3) *Attachment {
	return NewAttachmentWithCapture(m, CaptureAt(m.Pose(), obj), surfacePoint)
}

func NewAttachmentWithCapture(m Manipulator, c Capture, surfacePoint mgl64.Vec3) *Attachment {
	c.LocalOffsetRotation = c.LocalOffsetRotation.Normalize()
	return &Attachment{manipulator: m, capture: c, surface: surfacePoint}
}

func (a *Attachment) Manipulator() Manipulator { return a.manipulator }
func (a *Attachment) Capture() Capture         { return a.capture }

// NearestSurfacePoint is the object-space point nearest the manipulator as of
// the last refresh.
func (a *Attachment) NearestSurfacePoint() mgl64.Vec3 { return a.surface }

func (a *Attachment) SetNearestSurfacePoint(p mgl64.Vec3) { a.surface = p }

// RawRotation is the object rotation this attachment alone would produce.
func (a *Attachment) RawRotation(hand pose.Pose) mgl64.Quat {
	return hand.Rotation.Mul(a.capture.LocalOffsetRotation)
}
