package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const bodyCollisionType cp.CollisionType = 1

// Contact is a begin-contact report between two bodies, in the order the
// engine found them.
type Contact struct {
	A, B *Body
}

// ContactDelegate receives begin-contact reports after each Step. It may
// remove bodies from the world.
type ContactDelegate interface {
	DidBeginContact(c Contact)
}

// Options configures a World.
type Options struct {
	Gravity    Vec
	Iterations uint
	// PreciseSubsteps is how many equal sub-steps a Step is split into while
	// any precise body is in the world.
	PreciseSubsteps int
}

// DefaultOptions returns a gravity-free world with four precise sub-steps.
func DefaultOptions() Options {
	return Options{
		Iterations:      10,
		PreciseSubsteps: 4,
	}
}

// World owns a cp.Space and translates its collision callbacks into
// category-filtered contact reports.
type World struct {
	space    *cp.Space
	opts     Options
	delegate ContactDelegate

	bodies  int
	precise int
	pending []Contact
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	if opts.Iterations == 0 {
		opts.Iterations = DefaultOptions().Iterations
	}
	if opts.PreciseSubsteps < 1 {
		opts.PreciseSubsteps = 1
	}

	space := cp.NewSpace()
	space.Iterations = opts.Iterations
	space.SetGravity(opts.Gravity)

	w := &World{
		space: space,
		opts:  opts,
	}

	handler := space.NewCollisionHandler(bodyCollisionType, bodyCollisionType)
	handler.BeginFunc = w.begin
	return w
}

// SetGravity changes the world's gravity.
func (w *World) SetGravity(g Vec) {
	w.space.SetGravity(g)
}

// SetContactDelegate installs the receiver of contact reports.
func (w *World) SetContactDelegate(d ContactDelegate) {
	w.delegate = d
}

// AddCircle adds a body with a circular shape centred on pos.
func (w *World) AddCircle(def BodyDef, radius float64, pos Vec) *Body {
	b := newBody(def, math.Pi*radius*radius, cp.MomentForCircle(1, 0, radius, cp.Vector{}), pos)
	b.attachShape(cp.NewCircle(b.body, radius, cp.Vector{}), def)
	w.add(b, def)
	return b
}

// AddRect adds a body with an axis-aligned box shape centred on pos.
func (w *World) AddRect(def BodyDef, width, height float64, pos Vec) *Body {
	b := newBody(def, width*height, cp.MomentForBox(1, width, height), pos)
	b.attachShape(cp.NewBox(b.body, width, height, 0), def)
	w.add(b, def)
	return b
}

func (w *World) add(b *Body, def BodyDef) {
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	if def.Pinned && def.AllowsRotation && def.Dynamic {
		b.pin = w.space.AddConstraint(cp.NewPivotJoint(w.space.StaticBody, b.body, b.body.Position()))
	}

	b.attached = true
	w.bodies++
	if b.precise {
		w.precise++
	}
}

// Remove detaches the body from the world. Removing a detached body is a
// no-op and returns false. It must not be called from inside Step.
func (w *World) Remove(b *Body) bool {
	if !b.Attached() {
		return false
	}

	if b.pin != nil {
		w.space.RemoveConstraint(b.pin)
		b.pin = nil
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)

	b.attached = false
	w.bodies--
	if b.precise {
		w.precise--
	}
	return true
}

// BodyCount returns the number of attached bodies.
func (w *World) BodyCount() int {
	return w.bodies
}

// Step advances the simulation by dt seconds, then delivers the contacts that
// began during the step.
func (w *World) Step(dt float64) {
	steps := 1
	if w.precise > 0 {
		steps = w.opts.PreciseSubsteps
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		w.space.Step(h)
	}
	w.deliver()
}

// deliver hands buffered contacts to the delegate, skipping pairs whose
// bodies were removed by an earlier report in the same batch.
func (w *World) deliver() {
	if len(w.pending) == 0 {
		return
	}
	batch := w.pending
	w.pending = nil

	for _, c := range batch {
		if !c.A.Attached() || !c.B.Attached() {
			continue
		}
		if w.delegate != nil {
			w.delegate.DidBeginContact(c)
		}
	}
}

// begin is the cp begin callback. Returning false makes the pair pass
// through each other until they separate.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	a, okA := sa.UserData.(*Body)
	b, okB := sb.UserData.(*Body)
	if !okA || !okB {
		return true
	}

	if contacts(a, b) {
		w.pending = append(w.pending, Contact{A: a, B: b})
	}
	return collides(a, b)
}
