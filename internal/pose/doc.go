// Package pose provides rigid world poses and the rotation helpers the grab
// solver is built on.
//
// A [Pose] is a position plus a unit quaternion rotation. It converts points
// and directions between an object's local frame and world space the same
// way a scene-graph transform does, without scale:
//
//	obj := pose.New(mgl64.Vec3{0, 1, 0}, mgl64.QuatRotate(math.Pi/2, pose.Up))
//	world := obj.TransformPoint(mgl64.Vec3{0, 0, 0.1})
//	local := obj.InverseTransformPoint(world)
//
// [Slerp] always follows the shortest arc and [FromTo] falls back to the
// identity rotation for zero-length inputs, so neither produces NaN.
package pose
