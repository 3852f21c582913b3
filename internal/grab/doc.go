// Package grab computes where a held object should be each fixed step.
//
// An [Attachment] records how one manipulator held the object when the grab
// began. Every tick the [Solver] turns the ordered attachments of a grab and
// the object's current pose into a target pose:
//
//   - one attachment: the object follows the manipulator rigidly through the
//     captured offset.
//   - several attachments: the rotation is folded across the sequence with
//     weighted slerps, mixing each manipulator's own rotation with the
//     rotation implied by how the contact points moved, then damped toward
//     the current rotation. The position moves by the mean offset between
//     each manipulator and its contact point.
//
// The solver is pure. Objects commit the result through [physics.Apply].
//
// Grabbable object variants are described by a [Capabilities] table that the
// manipulation manager looks up and invokes explicitly. [NewGrabbable]
// builds the default variant.
//
// # Thread Safety
//
// A [Context] must only be touched by one goroutine at a time. Attachments
// are added and removed strictly between solves.
package grab
