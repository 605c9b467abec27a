package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay is drawn on top of every scene, e.g. a debug UI.
type Overlay interface {
	Update() error
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

type presentRequest struct {
	next Scene
	t    Transition
}

type flip struct {
	from    Scene
	t       Transition
	elapsed time.Duration
	buffer  *ebiten.Image
}

// progress is the fraction of the transition that has elapsed.
func (f *flip) progress() float64 {
	return min(1, float64(f.elapsed)/float64(f.t.Duration))
}

// done tolerates the rounding of a tick that does not divide a second.
func (f *flip) done() bool {
	return f.elapsed+time.Microsecond >= f.t.Duration
}

// Director runs the active scene and implements ebiten.Game.
type Director struct {
	width, height int
	tick          time.Duration

	current  Scene
	pending  *presentRequest
	updating bool
	flip     *flip
	overlay  Overlay
}

// NewDirector creates a director with a fixed logical size that advances
// scenes by 1/tps seconds per Update.
func NewDirector(width, height, tps int) *Director {
	return &Director{
		width:  width,
		height: height,
		tick:   time.Second / time.Duration(tps),
	}
}

// SetOverlay installs o above all scenes.
func (d *Director) SetOverlay(o Overlay) {
	d.overlay = o
}

// Current returns the active scene.
func (d *Director) Current() Scene {
	return d.current
}

// Transitioning reports whether a transition animation is running.
func (d *Director) Transitioning() bool {
	return d.flip != nil
}

// Present replaces the active scene. During Update the swap is deferred to
// the end of that Update.
func (d *Director) Present(next Scene, t Transition) {
	if d.updating {
		d.pending = &presentRequest{next: next, t: t}
		return
	}
	d.swap(next, t)
}

func (d *Director) swap(next Scene, t Transition) {
	prev := d.current
	if prev != nil {
		prev.WillMove()
	}
	d.current = next
	d.flip = nil
	if prev != nil && t.animated() {
		d.flip = &flip{from: prev, t: t}
	}
	next.DidMove(d)
}

func (d *Director) Update() error {
	if d.flip != nil {
		d.flip.elapsed += d.tick
		if d.flip.done() {
			d.flip = nil
		}
	}

	// The incoming scene stays paused until its transition completes.
	if d.current != nil && d.flip == nil {
		d.updating = true
		err := d.current.Update(d.tick.Seconds())
		d.updating = false
		if err != nil {
			return err
		}
	}

	if req := d.pending; req != nil {
		d.pending = nil
		d.swap(req.next, req.t)
	}

	if d.overlay != nil {
		return d.overlay.Update()
	}
	return nil
}

func (d *Director) Draw(screen *ebiten.Image) {
	if d.flip == nil {
		if d.current != nil {
			d.current.Draw(screen)
		}
	} else {
		d.drawFlip(screen)
	}

	if d.overlay != nil {
		d.overlay.Draw(screen)
	}
}

// drawFlip squeezes the outgoing scene to zero width during the first half
// and stretches the incoming one back out during the second.
func (d *Director) drawFlip(screen *ebiten.Image) {
	f := d.flip
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if f.buffer == nil || f.buffer.Bounds().Dx() != w || f.buffer.Bounds().Dy() != h {
		f.buffer = ebiten.NewImage(w, h)
	}

	p := f.progress()
	scene, scale := f.from, 1-2*p
	if p >= 0.5 {
		scene, scale = d.current, 2*p-1
	}

	f.buffer.Clear()
	scene.Draw(f.buffer)

	screen.Fill(backgroundColor)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, 0)
	op.GeoM.Scale(scale, 1)
	op.GeoM.Translate(float64(w)/2, 0)
	screen.DrawImage(f.buffer, op)
}

func (d *Director) Layout(outsideWidth, outsideHeight int) (int, int) {
	if d.overlay != nil {
		d.overlay.Layout(d.width, d.height)
	}
	return d.width, d.height
}
