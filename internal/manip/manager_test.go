package manip_test

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/grab"
	"github.com/san-kum/grabsim/internal/hand"
	"github.com/san-kum/grabsim/internal/manip"
	"github.com/san-kum/grabsim/internal/physics"
	"github.com/san-kum/grabsim/internal/pose"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// recorder counts every capability invocation.
type recorder struct {
	calls map[string]int
	sizes map[string][]int
}

func newRecorder() *recorder {
	return &recorder{calls: map[string]int{}, sizes: map[string][]int{}}
}

func (r *recorder) note(name string, c *grab.Context) {
	r.calls[name]++
	r.sizes[name] = append(r.sizes[name], c.Len())
}

func (r *recorder) wrap(inner grab.Capabilities) grab.Capabilities {
	return grab.Capabilities{
		OnGrabStart: func(c *grab.Context) { r.note("start", c); inner.GrabStart(c) },
		OnGrabEnd:   func(c *grab.Context) { r.note("end", c); inner.GrabEnd(c) },
		OnAttachmentAdded: func(c *grab.Context, a *grab.Attachment) {
			r.note("added", c)
			inner.AttachmentAdded(c, a)
		},
		OnAttachmentRemoved: func(c *grab.Context, a *grab.Attachment) {
			r.note("removed", c)
			inner.AttachmentRemoved(c, a)
		},
		OnFixedUpdate: func(c *grab.Context) { r.note("update", c); inner.FixedUpdate(c) },
		OnHandPose:    func(c *grab.Context, a *grab.Attachment) { r.note("pose", c); inner.HandPose(c, a) },
	}
}

var _ = Describe("Manager", func() {
	var (
		m     *manip.Manager
		rec   *recorder
		tr    *physics.Transform
		obj   *grab.Object
		left  *hand.Hand
		right *hand.Hand
	)

	BeforeEach(func() {
		m = manip.New(zap.NewNop())
		rec = newRecorder()
		tr = physics.NewTransform(pose.Identity())
		caps := rec.wrap(grab.NewGrabbable(grab.NewSolver(grab.DefaultParams())))
		obj = grab.NewObject("bar", tr, nil, caps)
		Expect(m.Register(obj)).To(Succeed())

		left = hand.New("l", hand.Left, pose.New(mgl64.Vec3{-0.3, 0, 0}, mgl64.QuatIdent()))
		right = hand.New("r", hand.Right, pose.New(mgl64.Vec3{0.3, 0, 0}, mgl64.QuatIdent()))
	})

	Describe("registration", func() {
		It("rejects duplicates", func() {
			Expect(m.Register(obj)).To(MatchError(manip.ErrDuplicateObject))
		})

		It("rejects unknown objects", func() {
			_, err := m.Attach("nope", left, mgl64.Vec3{})
			Expect(err).To(MatchError(manip.ErrUnknownObject))
			Expect(m.Detach("nope", left)).To(MatchError(manip.ErrUnknownObject))
			_, err = m.Context("nope")
			Expect(err).To(MatchError(manip.ErrUnknownObject))
		})
	})

	Describe("lifecycle hooks", func() {
		It("fires grab start only for the first attachment", func() {
			_, err := m.Attach("bar", left, mgl64.Vec3{-0.3, 0, 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(Equal(map[string]int{"start": 1}))

			_, err = m.Attach("bar", right, mgl64.Vec3{0.3, 0, 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(Equal(map[string]int{"start": 1, "added": 1}))
			Expect(rec.sizes["added"]).To(Equal([]int{2}))
		})

		It("fires grab end only for the last removal", func() {
			_, _ = m.Attach("bar", left, mgl64.Vec3{-0.3, 0, 0})
			_, _ = m.Attach("bar", right, mgl64.Vec3{0.3, 0, 0})

			Expect(m.Detach("bar", left)).To(Succeed())
			Expect(rec.calls["removed"]).To(Equal(1))
			Expect(rec.calls["end"]).To(Equal(0))

			Expect(m.Detach("bar", right)).To(Succeed())
			Expect(rec.calls["removed"]).To(Equal(1))
			Expect(rec.calls["end"]).To(Equal(1))
			Expect(rec.sizes["end"]).To(Equal([]int{0}))
		})

		It("raises the object's grab and release events once each", func() {
			grabs, releases := 0, 0
			obj.OnGrab.Subscribe(func() { grabs++ })
			obj.OnRelease.Subscribe(func() { releases++ })

			_, _ = m.Attach("bar", left, mgl64.Vec3{})
			_, _ = m.Attach("bar", right, mgl64.Vec3{})
			Expect(m.Detach("bar", right)).To(Succeed())
			Expect(m.Detach("bar", left)).To(Succeed())

			Expect(grabs).To(Equal(1))
			Expect(releases).To(Equal(1))
		})

		It("rejects double attach and stray detach", func() {
			_, err := m.Attach("bar", left, mgl64.Vec3{})
			Expect(err).NotTo(HaveOccurred())
			_, err = m.Attach("bar", left, mgl64.Vec3{})
			Expect(err).To(MatchError(manip.ErrAlreadyAttached))
			Expect(m.Detach("bar", right)).To(MatchError(manip.ErrNotAttached))
			Expect(rec.calls).To(Equal(map[string]int{"start": 1}))
		})
	})

	Describe("fixed update", func() {
		It("skips objects nobody holds", func() {
			Expect(m.FixedUpdate()).To(Succeed())
			Expect(rec.calls["update"]).To(Equal(0))
			Expect(m.Active()).To(BeEmpty())
		})

		It("ticks each grabbed object once and offers every hand pose", func() {
			_, _ = m.Attach("bar", left, mgl64.Vec3{-0.3, 0, 0})
			_, _ = m.Attach("bar", right, mgl64.Vec3{0.3, 0, 0})

			for i := 0; i < 3; i++ {
				Expect(m.FixedUpdate()).To(Succeed())
			}
			Expect(rec.calls["update"]).To(Equal(3))
			Expect(rec.calls["pose"]).To(Equal(6))
			Expect(m.Active()).To(Equal([]string{"bar"}))
			Expect(m.Ticks()).To(Equal(3))

			ctx, err := m.Context("bar")
			Expect(err).NotTo(HaveOccurred())
			Expect(ctx.Ticks).To(Equal(3))
		})

		It("moves the object with a single hand", func() {
			_, _ = m.Attach("bar", right, mgl64.Vec3{0.3, 0, 0})
			right.Translate(mgl64.Vec3{0, 0.2, 0})

			Expect(m.FixedUpdate()).To(Succeed())
			Expect(pose.Near(tr.Position(), mgl64.Vec3{0, 0.2, 0}, 1e-9)).To(BeTrue())
		})

		It("keeps a two-handed grip still when the hands are still", func() {
			_, _ = m.Attach("bar", left, mgl64.Vec3{-0.3, 0, 0})
			_, _ = m.Attach("bar", right, mgl64.Vec3{0.3, 0, 0})

			for i := 0; i < 20; i++ {
				Expect(m.FixedUpdate()).To(Succeed())
			}
			Expect(tr.Pose().ApproxEqual(pose.Identity(), 1e-7)).To(BeTrue())
		})

		It("refreshes contact points between ticks", func() {
			_, _ = m.Attach("bar", left, mgl64.Vec3{})
			Expect(m.RefreshSurfacePoint("bar", left, mgl64.Vec3{-0.3, 0, 0})).To(Succeed())
			Expect(m.Attachments("bar")[0].NearestSurfacePoint()).To(Equal(mgl64.Vec3{-0.3, 0, 0}))
			Expect(m.RefreshSurfacePoint("bar", right, mgl64.Vec3{})).To(MatchError(manip.ErrNotAttached))
		})
	})

	Describe("DetachAll", func() {
		It("releases a hand from every object", func() {
			other := grab.NewObject("cup", physics.NewTransform(pose.Identity()), nil, grab.Capabilities{})
			Expect(m.Register(other)).To(Succeed())
			_, _ = m.Attach("bar", left, mgl64.Vec3{})
			_, _ = m.Attach("cup", left, mgl64.Vec3{})

			n, err := m.DetachAll(left)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
			Expect(m.Active()).To(BeEmpty())
			Expect(rec.calls["end"]).To(Equal(1))
		})

		It("reports objects a hook already released", func() {
			cup := grab.NewObject("cup", physics.NewTransform(pose.Identity()), nil, grab.Capabilities{})
			plate := grab.NewObject("plate", physics.NewTransform(pose.Identity()), nil, grab.Capabilities{
				OnGrabEnd: func(*grab.Context) { _ = m.Detach("cup", left) },
			})
			Expect(m.Register(plate)).To(Succeed())
			Expect(m.Register(cup)).To(Succeed())
			_, _ = m.Attach("plate", left, mgl64.Vec3{})
			_, _ = m.Attach("cup", left, mgl64.Vec3{})

			n, err := m.DetachAll(left)
			Expect(n).To(Equal(1))
			Expect(err).To(MatchError(manip.ErrNotAttached))
			Expect(m.Active()).To(BeEmpty())
		})
	})
})
