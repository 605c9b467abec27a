package debugui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/gesture"
)

// Overlay runs the debug UI's own ECS world and implements scene.Overlay.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[ImguiBackend]
	input     *ecs.Singleton[InputState]
	dt        float64
}

// NewOverlay wires backend into a fresh storage that ticks at tps.
func NewOverlay(backend ImguiBackend, tps int) *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Panel](registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})

	return &Overlay{
		storage:   storage,
		scheduler: scheduler,
		backend:   ecs.NewSingleton[ImguiBackend](storage, backend),
		input:     ecs.NewSingleton[InputState](storage),
		dt:        1 / float64(tps),
	}
}

// AddPanel spawns a panel entity.
func (o *Overlay) AddPanel(render func()) ecs.EntityId {
	return o.storage.Spawn(Panel{Render: render})
}

func (o *Overlay) Update() error {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(o.dt)
	backend.EndFrame()
	return nil
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Get().Layout(width, height)
}

// Guard hides presses from src while the overlay has the mouse, so dragging a
// panel does not flick the player.
func (o *Overlay) Guard(src gesture.PointerSource) gesture.PointerSource {
	return guardedSource{src: src, input: o.input.Get()}
}

type guardedSource struct {
	src   gesture.PointerSource
	input *InputState
}

func (g guardedSource) Pointer() (float64, float64, bool) {
	x, y, down := g.src.Pointer()
	return x, y, down && !g.input.WantCaptureMouse
}
