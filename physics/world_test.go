package physics_test

import (
	"testing"

	"github.com/plus3/bounce/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	contacts []physics.Contact
	onBegin  func(c physics.Contact)
}

func (r *recorder) DidBeginContact(c physics.Contact) {
	r.contacts = append(r.contacts, c)
	if r.onBegin != nil {
		r.onBegin(c)
	}
}

func borderDef() physics.BodyDef {
	def := physics.NewBodyDef(physics.CategoryBorder)
	def.Dynamic = false
	def.Pinned = true
	def.Precise = true
	def.ContactTest = physics.CategoryMonster
	def.Collision = physics.CategoryNone
	return def
}

func monsterDef() physics.BodyDef {
	def := physics.NewBodyDef(physics.CategoryMonster)
	def.Precise = true
	def.ContactTest = physics.CategoryBorder
	def.Collision = physics.CategoryMonster | physics.CategoryPlayer
	return def
}

func playerDef() physics.BodyDef {
	def := physics.NewBodyDef(physics.CategoryPlayer)
	def.Precise = true
	def.ContactTest = physics.CategoryBorder
	def.Collision = physics.CategoryMonster | physics.CategoryBorder
	return def
}

func run(w *physics.World, seconds float64) {
	const dt = 1.0 / 60.0
	for t := 0.0; t < seconds; t += dt {
		w.Step(dt)
	}
}

func TestMonsterPassesThroughBorder(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())
	rec := &recorder{}
	w.SetContactDelegate(rec)

	border := w.AddRect(borderDef(), 20, 400, physics.Vec{X: 100})
	monster := w.AddCircle(monsterDef(), 10, physics.Vec{})
	monster.SetVelocity(physics.Vec{X: 300})

	run(w, 1)

	require.Len(t, rec.contacts, 1)
	c := rec.contacts[0]
	assert.ElementsMatch(t, []*physics.Body{border, monster}, []*physics.Body{c.A, c.B})
	assert.Greater(t, monster.Position().X, 150.0, "monster is not stopped by the border")
	assert.Equal(t, physics.Vec{X: 100}, border.Position())
}

func TestMonstersCollideWithoutContact(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())
	rec := &recorder{}
	w.SetContactDelegate(rec)

	left := w.AddCircle(monsterDef(), 10, physics.Vec{X: -50})
	right := w.AddCircle(monsterDef(), 10, physics.Vec{X: 50})
	left.SetVelocity(physics.Vec{X: 100})
	right.SetVelocity(physics.Vec{X: -100})

	run(w, 2)

	assert.Empty(t, rec.contacts)
	assert.Less(t, left.Position().X, right.Position().X, "monsters bounced off each other")
}

func TestPlayerIsStoppedByBorder(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())
	rec := &recorder{}
	w.SetContactDelegate(rec)

	def := borderDef()
	def.ContactTest = physics.CategoryMonster
	w.AddRect(def, 20, 400, physics.Vec{X: 100})
	player := w.AddCircle(playerDef(), 20, physics.Vec{})
	player.SetVelocity(physics.Vec{X: 300})

	run(w, 1)

	require.NotEmpty(t, rec.contacts)
	assert.Less(t, player.Position().X, 90.0)
}

func TestPlayerPushesMonster(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())

	player := w.AddCircle(playerDef(), 20, physics.Vec{})
	monster := w.AddCircle(monsterDef(), 10, physics.Vec{X: 60})
	player.SetVelocity(physics.Vec{X: 200})

	run(w, 1)

	assert.Greater(t, monster.Velocity().X, 0.0)
	assert.Greater(t, monster.Position().X, 60.0)
}

func TestDelegateMayRemoveBodies(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())
	rec := &recorder{}
	rec.onBegin = func(c physics.Contact) {
		for _, b := range []*physics.Body{c.A, c.B} {
			if b.Category() == physics.CategoryMonster {
				w.Remove(b)
			}
		}
	}
	w.SetContactDelegate(rec)

	w.AddRect(borderDef(), 20, 400, physics.Vec{X: 100})
	monster := w.AddCircle(monsterDef(), 10, physics.Vec{})
	monster.SetVelocity(physics.Vec{X: 300})

	run(w, 1)

	assert.Len(t, rec.contacts, 1)
	assert.False(t, monster.Attached())
	assert.Equal(t, 1, w.BodyCount())
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())

	a := w.AddCircle(monsterDef(), 10, physics.Vec{})
	w.AddCircle(monsterDef(), 10, physics.Vec{X: 100})
	assert.Equal(t, 2, w.BodyCount())

	assert.True(t, w.Remove(a))
	assert.False(t, w.Remove(a))
	assert.False(t, w.Remove(nil))
	assert.Equal(t, 1, w.BodyCount())
	assert.False(t, a.Attached())
}

func TestGravityOnlyMovesAffectedBodies(t *testing.T) {
	w := physics.NewWorld(physics.Options{Gravity: physics.Vec{Y: -100}})

	falling := physics.NewBodyDef(physics.CategoryMonster)
	falling.AffectedByGravity = true
	a := w.AddCircle(falling, 10, physics.Vec{})
	b := w.AddCircle(physics.NewBodyDef(physics.CategoryMonster), 10, physics.Vec{X: 100})

	run(w, 0.5)

	assert.Less(t, a.Position().Y, 0.0)
	assert.InDelta(t, 0.0, b.Position().Y, 1e-9)
}

func TestLinearDampingSlowsBody(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())

	damped := physics.NewBodyDef(physics.CategoryMonster)
	damped.LinearDamping = 0.5
	a := w.AddCircle(damped, 10, physics.Vec{})
	b := w.AddCircle(physics.NewBodyDef(physics.CategoryMonster), 10, physics.Vec{Y: 100})
	a.SetVelocity(physics.Vec{X: 100})
	b.SetVelocity(physics.Vec{X: 100})

	run(w, 1)

	assert.Less(t, a.Velocity().X, 100.0)
	assert.InDelta(t, 100.0, b.Velocity().X, 1e-6)
}

func TestNonRotatingBodyKeepsAngle(t *testing.T) {
	w := physics.NewWorld(physics.DefaultOptions())

	player := w.AddCircle(playerDef(), 20, physics.Vec{})
	w.AddCircle(monsterDef(), 10, physics.Vec{X: 60, Y: 15})
	player.SetVelocity(physics.Vec{X: 200})

	run(w, 1)

	assert.Equal(t, 0.0, player.Angle())
}
