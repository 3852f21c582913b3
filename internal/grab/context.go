package grab

import (
	"github.com/san-kum/grabsim/internal/physics"
	"github.com/san-kum/grabsim/internal/pose"
)

// Object is a grabbable scene object.
type Object struct {
	Name      string
	Transform *physics.Transform
	// Body is optional. Without one, solved poses are written straight to
	// the transform.
	Body physics.Body
	Caps Capabilities

	OnGrab    Event
	OnRelease Event
}

func NewObject(name string, t *physics.Transform, body physics.Body, caps Capabilities) *Object {
	return &Object{Name: name, Transform: t, Body: body, Caps: caps}
}

func (o *Object) Pose() pose.Pose { return o.Transform.Pose() }

// Context is the live state of one grab: the object and the ordered
// attachments currently holding it.
type Context struct {
	Object      *Object
	Attachments []*Attachment

	// Last is the most recent solution, kept for diagnostics.
	Last Solution
	// Ticks counts fixed updates applied to this grab.
	Ticks int
}

func NewContext(obj *Object) *Context {
	return &Context{Object: obj, Attachments: make([]*Attachment, 0, 2)}
}

func (c *Context) Body() physics.Body { return c.Object.Body }

func (c *Context) Len() int { return len(c.Attachments) }

// Validate checks the caller contract for a solve.
func (c *Context) Validate() error {
	if c.Object == nil || c.Object.Transform == nil {
		return ErrNoObject
	}
	if len(c.Attachments) == 0 {
		return ErrNoAttachments
	}
	return nil
}

// Find returns the index of the attachment held by m, or -1.
func (c *Context) Find(m Manipulator) int {
	for i, a := range c.Attachments {
		if a.manipulator == m {
			return i
		}
	}
	return -1
}
