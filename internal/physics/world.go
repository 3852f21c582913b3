package physics

import "fmt"

type World struct {
	bodies []*RigidBody
	steps  int
}

func NewWorld() *World {
	return &World{bodies: make([]*RigidBody, 0)}
}

func (w *World) Add(b *RigidBody) { w.bodies = append(w.bodies, b) }

func (w *World) Bodies() []*RigidBody { return w.bodies }

func (w *World) Steps() int { return w.steps }

// Step advances every body by dt, committing pending kinematic moves.
func (w *World) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	for _, b := range w.bodies {
		b.Step(dt)
	}
	w.steps++
	return nil
}
