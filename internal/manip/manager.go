// Package manip owns the set of grabbable objects and who is holding them.
//
// The [Manager] is the only place attachments are created or destroyed. It
// dispatches each lifecycle callback exactly once per transition and ticks
// every grabbed object from [Manager.FixedUpdate], so attachment lists never
// change while a solve is running.
package manip

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/grab"
	"go.uber.org/zap"
)

var (
	ErrUnknownObject   = errors.New("manip: unknown object")
	ErrDuplicateObject = errors.New("manip: object already registered")
	ErrAlreadyAttached = errors.New("manip: manipulator already attached")
	ErrNotAttached     = errors.New("manip: manipulator not attached")
)

type entry struct {
	obj *grab.Object
	ctx *grab.Context
}

type Manager struct {
	entries map[string]*entry
	order   []string
	log     *zap.Logger
	ticks   int
}

func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		entries: make(map[string]*entry),
		order:   make([]string, 0),
		log:     log,
	}
}

// Register makes obj available for grabbing. Objects tick in registration order.
func (m *Manager) Register(obj *grab.Object) error {
	if _, ok := m.entries[obj.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.Name)
	}
	m.entries[obj.Name] = &entry{obj: obj, ctx: grab.NewContext(obj)}
	m.order = append(m.order, obj.Name)
	m.log.Debug("registered object", zap.String("object", obj.Name))
	return nil
}

func (m *Manager) lookup(name string) (*entry, error) {
	e, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	return e, nil
}

// Attach starts hand holding the named object at an object-space surface point.
func (m *Manager) Attach(name string, hand grab.Manipulator, surfacePoint mgl64.Vec3) (*grab.Attachment, error) {
	e, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	if e.ctx.Find(hand) >= 0 {
		return nil, fmt.Errorf("%w: %v on %s", ErrAlreadyAttached, hand, name)
	}

	a := grab.NewAttachment(hand, e.obj.Pose(), surfacePoint)
	first := e.ctx.Len() == 0
	e.ctx.Attachments = append(e.ctx.Attachments, a)

	if first {
		m.log.Debug("grab start", zap.String("object", name), zap.String("hand", fmt.Sprint(hand)))
		e.obj.Caps.GrabStart(e.ctx)
	} else {
		m.log.Debug("attachment added", zap.String("object", name), zap.Int("attachments", e.ctx.Len()))
		e.obj.Caps.AttachmentAdded(e.ctx, a)
	}
	return a, nil
}

// Detach releases hand from the named object.
func (m *Manager) Detach(name string, hand grab.Manipulator) error {
	e, err := m.lookup(name)
	if err != nil {
		return err
	}
	idx := e.ctx.Find(hand)
	if idx < 0 {
		return fmt.Errorf("%w: %v on %s", ErrNotAttached, hand, name)
	}

	a := e.ctx.Attachments[idx]
	e.ctx.Attachments = append(e.ctx.Attachments[:idx], e.ctx.Attachments[idx+1:]...)

	if e.ctx.Len() == 0 {
		m.log.Debug("grab end", zap.String("object", name), zap.Int("ticks", e.ctx.Ticks))
		e.obj.Caps.GrabEnd(e.ctx)
		e.ctx.Ticks = 0
	} else {
		m.log.Debug("attachment removed", zap.String("object", name), zap.Int("attachments", e.ctx.Len()))
		e.obj.Caps.AttachmentRemoved(e.ctx, a)
	}
	return nil
}

// DetachAll releases every object hand is holding and returns how many it
// released. The held set is taken up front, so a lifecycle hook that
// releases hand elsewhere shows up as an ErrNotAttached in the joined error.
func (m *Manager) DetachAll(hand grab.Manipulator) (int, error) {
	var held []string
	for _, name := range m.order {
		if m.entries[name].ctx.Find(hand) >= 0 {
			held = append(held, name)
		}
	}

	n := 0
	var errs []error
	for _, name := range held {
		if err := m.Detach(name, hand); err != nil {
			m.log.Warn("detach failed", zap.String("object", name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// RefreshSurfacePoint updates the contact point hand has on the named object.
func (m *Manager) RefreshSurfacePoint(name string, hand grab.Manipulator, p mgl64.Vec3) error {
	e, err := m.lookup(name)
	if err != nil {
		return err
	}
	idx := e.ctx.Find(hand)
	if idx < 0 {
		return fmt.Errorf("%w: %v on %s", ErrNotAttached, hand, name)
	}
	e.ctx.Attachments[idx].SetNearestSurfacePoint(p)
	return nil
}

// FixedUpdate ticks every grabbed object once, then offers each attachment
// to the object's hand pose hook.
func (m *Manager) FixedUpdate() error {
	for _, name := range m.order {
		e := m.entries[name]
		if e.ctx.Len() == 0 {
			continue
		}
		if err := e.ctx.Validate(); err != nil {
			return fmt.Errorf("fixed update %s: %w", name, err)
		}
		e.obj.Caps.FixedUpdate(e.ctx)
		for _, a := range e.ctx.Attachments {
			e.obj.Caps.HandPose(e.ctx, a)
		}
	}
	m.ticks++
	return nil
}

// Active lists the names of objects currently held, in tick order.
func (m *Manager) Active() []string {
	names := make([]string, 0, len(m.order))
	for _, name := range m.order {
		if m.entries[name].ctx.Len() > 0 {
			names = append(names, name)
		}
	}
	return names
}

// Context returns the live grab context of the named object.
func (m *Manager) Context(name string) (*grab.Context, error) {
	e, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.ctx, nil
}

func (m *Manager) Attachments(name string) []*grab.Attachment {
	e, ok := m.entries[name]
	if !ok {
		return nil
	}
	out := make([]*grab.Attachment, len(e.ctx.Attachments))
	copy(out, e.ctx.Attachments)
	return out
}

func (m *Manager) Ticks() int { return m.ticks }
