package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/grab"
	"github.com/san-kum/grabsim/internal/hand"
	"github.com/san-kum/grabsim/internal/manip"
	"github.com/san-kum/grabsim/internal/physics"
	"github.com/san-kum/grabsim/internal/pose"
	"go.uber.org/zap"
)

// Rig is the scene a scenario drives: objects, hands, the manipulation
// manager and the physics world. A rig belongs to a single run.
type Rig struct {
	World   *physics.World
	Manager *manip.Manager
	Solver  *grab.Solver
	Rand    *rand.Rand

	cfg     Config
	hands   map[string]*hand.Hand
	objects map[string]*grab.Object
	tracked string
	events  []Event
	step    int
	time    float64
}

func NewRig(cfg Config, log *zap.Logger) *Rig {
	return &Rig{
		World:   physics.NewWorld(),
		Manager: manip.New(log),
		Solver:  grab.NewSolver(cfg.Solver),
		Rand:    rand.New(rand.NewSource(cfg.Seed)),
		cfg:     cfg,
		hands:   make(map[string]*hand.Hand),
		objects: make(map[string]*grab.Object),
	}
}

// AddObject places a grabbable object. The first object added is the one
// the simulator tracks.
func (r *Rig) AddObject(name string, p pose.Pose) (*grab.Object, error) {
	tr := physics.NewTransform(p)
	var body physics.Body
	if r.cfg.RigidBody {
		rb := physics.NewRigidBody(tr)
		r.World.Add(rb)
		body = rb
	}

	obj := grab.NewObject(name, tr, body, r.record(grab.NewGrabbable(r.Solver)))
	if err := r.Manager.Register(obj); err != nil {
		return nil, err
	}
	r.objects[name] = obj
	if r.tracked == "" {
		r.tracked = name
	}
	return obj, nil
}

// record wraps a variant so its lifecycle transitions land in the event log.
func (r *Rig) record(caps grab.Capabilities) grab.Capabilities {
	wrapped := caps
	wrapped.OnGrabStart = func(c *grab.Context) {
		r.logEvent(c, EventGrabStart)
		caps.GrabStart(c)
	}
	wrapped.OnGrabEnd = func(c *grab.Context) {
		r.logEvent(c, EventGrabEnd)
		caps.GrabEnd(c)
	}
	wrapped.OnAttachmentAdded = func(c *grab.Context, a *grab.Attachment) {
		r.logEvent(c, EventAttach)
		caps.AttachmentAdded(c, a)
	}
	wrapped.OnAttachmentRemoved = func(c *grab.Context, a *grab.Attachment) {
		r.logEvent(c, EventDetach)
		caps.AttachmentRemoved(c, a)
	}
	return wrapped
}

func (r *Rig) logEvent(c *grab.Context, kind string) {
	r.events = append(r.events, Event{Step: r.step, Time: r.time, Object: c.Object.Name, Kind: kind})
}

func (r *Rig) AddHand(id string, side hand.Side, p pose.Pose) *hand.Hand {
	h := hand.New(id, side, p)
	r.hands[id] = h
	return h
}

func (r *Rig) Hand(id string) (*hand.Hand, error) {
	h, ok := r.hands[id]
	if !ok {
		return nil, fmt.Errorf("unknown hand: %s", id)
	}
	return h, nil
}

// Hands returns the rig's hands ordered by ID.
func (r *Rig) Hands() []*hand.Hand {
	hands := make([]*hand.Hand, 0, len(r.hands))
	for _, h := range r.hands {
		hands = append(hands, h)
	}
	sort.Slice(hands, func(i, j int) bool { return hands[i].ID < hands[j].ID })
	return hands
}

func (r *Rig) Object(name string) (*grab.Object, error) {
	obj, ok := r.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", manip.ErrUnknownObject, name)
	}
	return obj, nil
}

// Tracked returns the object whose pose the simulator records.
func (r *Rig) Tracked() *grab.Object { return r.objects[r.tracked] }

// Place sets a hand's pose, perturbing its position with the configured noise.
func (r *Rig) Place(id string, p pose.Pose) error {
	h, err := r.Hand(id)
	if err != nil {
		return err
	}
	if r.cfg.Noise > 0 {
		p.Position = p.Position.Add(mgl64.Vec3{
			r.Rand.NormFloat64() * r.cfg.Noise,
			r.Rand.NormFloat64() * r.cfg.Noise,
			r.Rand.NormFloat64() * r.cfg.Noise,
		})
	}
	h.SetPose(p)
	return nil
}

// Grab attaches a hand to an object at the point under the hand.
func (r *Rig) Grab(object, handID string) error {
	obj, err := r.Object(object)
	if err != nil {
		return err
	}
	h, err := r.Hand(handID)
	if err != nil {
		return err
	}
	contact := obj.Pose().InverseTransformPoint(h.Pose().Position)
	_, err = r.Manager.Attach(object, h, contact)
	return err
}

func (r *Rig) Release(object, handID string) error {
	h, err := r.Hand(handID)
	if err != nil {
		return err
	}
	return r.Manager.Detach(object, h)
}

// Holding reports how many hands hold the named object.
func (r *Rig) Holding(object string) int {
	return len(r.Manager.Attachments(object))
}

func (r *Rig) Events() []Event { return r.events }

func (r *Rig) Time() float64 { return r.time }
