package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/grabsim/internal/hand"
	"github.com/san-kum/grabsim/internal/pose"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if cfg.Solver.Damping != 0.4 {
		t.Errorf("DefaultConfig damping = %v, want 0.4", cfg.Solver.Damping)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestRig_GrabRelease(t *testing.T) {
	r := NewRig(DefaultConfig(), nil)
	if _, err := r.AddObject("box", pose.Identity()); err != nil {
		t.Fatalf("add object: %v", err)
	}
	if _, err := r.AddObject("box", pose.Identity()); err == nil {
		t.Error("expected duplicate object error")
	}
	r.AddHand("l", hand.Left, pose.New(mgl64.Vec3{0.1, 0, 0}, mgl64.QuatIdent()))

	if err := r.Grab("box", "l"); err != nil {
		t.Fatalf("grab: %v", err)
	}
	if got := r.Manager.Attachments("box")[0].NearestSurfacePoint(); got != (mgl64.Vec3{0.1, 0, 0}) {
		t.Errorf("contact = %v, want hand position in object space", got)
	}
	if r.Holding("box") != 1 {
		t.Errorf("holding = %d, want 1", r.Holding("box"))
	}
	if err := r.Release("box", "l"); err != nil {
		t.Fatalf("release: %v", err)
	}

	kinds := []string{}
	for _, e := range r.Events() {
		kinds = append(kinds, e.Kind)
	}
	if len(kinds) != 2 || kinds[0] != EventGrabStart || kinds[1] != EventGrabEnd {
		t.Errorf("events = %v, want [grab_start grab_end]", kinds)
	}

	if err := r.Grab("box", "missing"); err == nil {
		t.Error("expected error for unknown hand")
	}
	if err := r.Grab("missing", "l"); err == nil {
		t.Error("expected error for unknown object")
	}
}

func TestRig_PlaceNoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Noise = 0.01
	cfg.Seed = 7
	r := NewRig(cfg, nil)
	r.AddHand("h", hand.Right, pose.Identity())

	if err := r.Place("h", pose.Identity()); err != nil {
		t.Fatalf("place: %v", err)
	}
	h, _ := r.Hand("h")
	if h.Pose().Position == (mgl64.Vec3{}) {
		t.Error("expected noisy position")
	}
	if h.Pose().Position.Len() > 0.1 {
		t.Errorf("noise too large: %v", h.Pose().Position)
	}
	if err := r.Place("nope", pose.Identity()); err == nil {
		t.Error("expected error for unknown hand")
	}
}

func TestRig_BodyFollowsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RigidBody = false
	r := NewRig(cfg, nil)
	obj, err := r.AddObject("box", pose.Identity())
	if err != nil {
		t.Fatal(err)
	}
	if obj.Body != nil {
		t.Error("expected no rigid body")
	}
	if len(r.World.Bodies()) != 0 {
		t.Errorf("expected empty world, got %d bodies", len(r.World.Bodies()))
	}
}

func TestRig_HandsOrdered(t *testing.T) {
	r := NewRig(DefaultConfig(), nil)
	r.AddHand("right", hand.Right, pose.Identity())
	r.AddHand("left", hand.Left, pose.Identity())

	hands := r.Hands()
	if len(hands) != 2 || hands[0].ID != "left" || hands[1].ID != "right" {
		t.Errorf("Hands() = %v, want [left right]", hands)
	}
}
