package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is the engine's 2D vector type.
type Vec = cp.Vector

const (
	defaultDensity     = 0.01
	defaultRestitution = 0.2
	defaultFriction    = 0.2
)

// BodyDef describes how a body takes part in the simulation.
type BodyDef struct {
	Category    Category
	ContactTest Category
	Collision   Category

	// Dynamic bodies are moved by the simulation. Static ones never move.
	Dynamic bool
	// Pinned holds a dynamic body's centre in place while still letting it
	// spin when AllowsRotation is set.
	Pinned            bool
	AllowsRotation    bool
	AffectedByGravity bool
	// LinearDamping is the fraction of velocity shed per second.
	LinearDamping float64
	Density       float64
	Restitution   float64
	Friction      float64
	// Precise bodies make the world sub-step every Step.
	Precise bool
}

// NewBodyDef returns a dynamic, non-rotating definition for category with the
// host engine's default material.
func NewBodyDef(category Category) BodyDef {
	return BodyDef{
		Category:    category,
		Dynamic:     true,
		Density:     defaultDensity,
		Restitution: defaultRestitution,
		Friction:    defaultFriction,
	}
}

func (d BodyDef) static() bool {
	return !d.Dynamic || (d.Pinned && !d.AllowsRotation)
}

// Body is a simulated body with a single shape.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	pin   *cp.Constraint

	category    Category
	contactTest Category
	collision   Category
	precise     bool
	attached    bool

	// UserData is free for the owner, typically an entity id.
	UserData any
}

func newBody(def BodyDef, area, moment float64, pos Vec) *Body {
	var cb *cp.Body
	if def.static() {
		cb = cp.NewStaticBody()
	} else {
		mass := area * def.Density
		if mass <= 0 {
			mass = area * defaultDensity
		}
		if !def.AllowsRotation {
			moment = math.Inf(1)
		} else {
			moment *= mass
		}
		cb = cp.NewBody(mass, moment)
		cb.SetVelocityUpdateFunc(velocityFunc(def))
	}
	cb.SetPosition(pos)

	b := &Body{
		body:        cb,
		category:    def.Category,
		contactTest: def.ContactTest,
		collision:   def.Collision,
		precise:     def.Precise,
	}
	cb.UserData = b
	return b
}

func (b *Body) attachShape(shape *cp.Shape, def BodyDef) {
	shape.SetElasticity(def.Restitution)
	shape.SetFriction(def.Friction)
	shape.SetCollisionType(bodyCollisionType)
	shape.UserData = b
	b.shape = shape
}

// velocityFunc applies the body's own gravity and damping settings on top of
// the world's integration.
func velocityFunc(def BodyDef) cp.BodyVelocityFunc {
	affected := def.AffectedByGravity
	linear := def.LinearDamping
	return func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		if !affected {
			gravity = cp.Vector{}
		}
		if linear > 0 {
			damping *= math.Exp(-linear * dt)
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
	}
}

// Position returns the body's centre.
func (b *Body) Position() Vec {
	return b.body.Position()
}

// SetPosition moves the body's centre.
func (b *Body) SetPosition(p Vec) {
	b.body.SetPosition(p)
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() Vec {
	return b.body.Velocity()
}

// SetVelocity replaces the body's linear velocity.
func (b *Body) SetVelocity(v Vec) {
	b.body.SetVelocityVector(v)
}

// Angle returns the body's rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// Category returns the body's collision class.
func (b *Body) Category() Category {
	return b.category
}

// ContactTest returns the categories this body wants contact reports for.
func (b *Body) ContactTest() Category {
	return b.contactTest
}

// Collision returns the categories this body physically collides with.
func (b *Body) Collision() Category {
	return b.collision
}

// Attached reports whether the body is still part of a world.
func (b *Body) Attached() bool {
	return b != nil && b.attached
}
