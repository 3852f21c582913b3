package grab

// Capabilities is the set of callbacks a grabbable variant provides. Nil
// entries are skipped. The manipulation manager invokes them at the
// transitions named by each field.
type Capabilities struct {
	// OnGrabStart runs when the first attachment is added to an empty grab.
	OnGrabStart func(c *Context)
	// OnGrabEnd runs when the last attachment is removed.
	OnGrabEnd func(c *Context)
	// OnAttachmentAdded runs when a manipulator joins an existing grab.
	OnAttachmentAdded func(c *Context, a *Attachment)
	// OnAttachmentRemoved runs when a manipulator leaves and others remain.
	OnAttachmentRemoved func(c *Context, a *Attachment)
	// OnFixedUpdate runs once per fixed step while the object is grabbed.
	OnFixedUpdate func(c *Context)
	// OnHandPose lets a variant override a manipulator's hand pose.
	OnHandPose func(c *Context, a *Attachment)
}

func (caps Capabilities) GrabStart(c *Context) {
	if caps.OnGrabStart != nil {
		caps.OnGrabStart(c)
	}
}

func (caps Capabilities) GrabEnd(c *Context) {
	if caps.OnGrabEnd != nil {
		caps.OnGrabEnd(c)
	}
}

func (caps Capabilities) AttachmentAdded(c *Context, a *Attachment) {
	if caps.OnAttachmentAdded != nil {
		caps.OnAttachmentAdded(c, a)
	}
}

func (caps Capabilities) AttachmentRemoved(c *Context, a *Attachment) {
	if caps.OnAttachmentRemoved != nil {
		caps.OnAttachmentRemoved(c, a)
	}
}

func (caps Capabilities) FixedUpdate(c *Context) {
	if caps.OnFixedUpdate != nil {
		caps.OnFixedUpdate(c)
	}
}

func (caps Capabilities) HandPose(c *Context, a *Attachment) {
	if caps.OnHandPose != nil {
		caps.OnHandPose(c, a)
	}
}

// Event is a list of zero-argument listeners.
type Event struct {
	listeners []func()
}

func (e *Event) Subscribe(fn func()) { e.listeners = append(e.listeners, fn) }

func (e *Event) Emit() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *Event) Len() int { return len(e.listeners) }
