package grab

import "github.com/san-kum/grabsim/internal/physics"

// NewGrabbable returns the default variant: the object follows its
// manipulators through solver and raises OnGrab/OnRelease when a grab
// starts and ends.
func NewGrabbable(solver *Solver) Capabilities {
	return Capabilities{
		OnGrabStart:         func(c *Context) { c.Object.OnGrab.Emit() },
		OnGrabEnd:           func(c *Context) { c.Object.OnRelease.Emit() },
		OnAttachmentAdded:   func(*Context, *Attachment) {},
		OnAttachmentRemoved: func(*Context, *Attachment) {},
		OnFixedUpdate: func(c *Context) {
			sol := solver.Solve(c.Attachments, c.Object.Pose())
			physics.Apply(sol.Pose, c.Object.Transform, c.Object.Body)
			c.Last = sol
			c.Ticks++
		},
		// no posing
		OnHandPose: func(*Context, *Attachment) {},
	}
}
