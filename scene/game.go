package scene

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bounce/config"
	"github.com/plus3/bounce/ecs"
	"github.com/plus3/bounce/gesture"
	"github.com/plus3/bounce/physics"
	"golang.org/x/image/colornames"
)

const wallThickness = 100

var (
	wallColor    = colornames.Royalblue
	playerColor  = colornames.Orange
	monsterColor = colornames.Lightgreen
)

// Stats is a snapshot of a running game for overlays and reports.
type Stats struct {
	Score     Score
	Entities  int
	Scheduler *ecs.SchedulerStats
}

// Game is the arena: a player circle flicked into a field of monsters that
// are eliminated when they touch a border.
type Game struct {
	cfg     config.Config
	jukebox Jukebox
	source  gesture.PointerSource
	rng     *rand.Rand

	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	commands   *ecs.Commands
	world      *physics.World
	score      *ecs.Singleton[Score]
	arena      Arena
	player     *physics.Body
	recognizer *gesture.Recognizer
	events     []gesture.Event
	sprites    *ecs.Query[spriteView]

	presenter Presenter
	ready     bool
	won       bool
	// over is set once GameOver has been handed to a presenter.
	over bool
}

// NewGame creates an arena driven by source. A nil jukebox plays nothing and
// a nil source never produces gestures.
func NewGame(cfg config.Config, jukebox Jukebox, source gesture.PointerSource) *Game {
	if jukebox == nil {
		jukebox = Silent{}
	}
	if source == nil {
		source = &gesture.ManualSource{}
	}

	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Game{
		cfg:        cfg,
		jukebox:    jukebox,
		source:     source,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		arena:      Arena{Width: cfg.Width, Height: cfg.Height},
		recognizer: gesture.NewRecognizer(source),
	}
}

// Setup builds the world: four borders, the player and the monster field.
// It runs once; DidMove calls it when the game is first presented.
func (g *Game) Setup() {
	if g.ready {
		return
	}
	g.ready = true

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	g.storage = ecs.NewStorage(registry)
	g.commands = ecs.NewCommands()

	g.world = physics.NewWorld(physics.DefaultOptions())
	g.world.SetContactDelegate(g)
	ecs.NewSingleton[World](g.storage, World{g.world})
	ecs.NewSingleton[Arena](g.storage, g.arena)
	g.score = ecs.NewSingleton[Score](g.storage)

	g.scheduler = ecs.NewScheduler(g.storage)
	g.scheduler.Register(&PhysicsSystem{})
	g.sprites = ecs.NewQuery[spriteView](g.storage)

	g.setupBorders()
	g.setupPlayer(physics.Vec{X: g.arena.Width - g.cfg.PlayerInset, Y: g.arena.Height / 2})
	g.setupMonsters()
}

func (g *Game) spawn(b *physics.Body, components ...any) ecs.EntityId {
	id := g.storage.Spawn(append([]any{Body{b}}, components...)...)
	b.UserData = id
	return id
}

func (g *Game) setupBorders() {
	w, h := g.arena.Width, g.arena.Height
	borders := []struct {
		side          Side
		width, height float64
		pos           physics.Vec
	}{
		{SideTop, w * 2, wallThickness, physics.Vec{X: w / 2, Y: h + wallThickness/2}},
		{SideBottom, w * 2, wallThickness, physics.Vec{X: w / 2, Y: -wallThickness / 2}},
		{SideRight, wallThickness, h * 2, physics.Vec{X: w + wallThickness/2, Y: h / 2}},
		{SideLeft, wallThickness, h * 2, physics.Vec{X: -wallThickness / 2, Y: h / 2}},
	}

	for _, b := range borders {
		def := physics.NewBodyDef(physics.CategoryBorder)
		def.Pinned = true
		def.AllowsRotation = false
		def.AffectedByGravity = false
		def.Dynamic = false
		def.ContactTest = physics.CategoryMonster
		def.Collision = physics.CategoryNone
		def.Precise = true

		body := g.world.AddRect(def, b.width, b.height, b.pos)
		g.spawn(body,
			Wall{Side: b.side},
			Sprite{Kind: SpriteRect, Width: b.width, Height: b.height, Color: wallColor},
		)
	}
}

func (g *Game) setupPlayer(pos physics.Vec) {
	def := physics.NewBodyDef(physics.CategoryPlayer)
	def.AffectedByGravity = false
	def.ContactTest = physics.CategoryBorder
	def.Collision = physics.CategoryMonster | physics.CategoryBorder
	def.Precise = true

	g.player = g.world.AddCircle(def, g.cfg.PlayerRadius, pos)
	g.spawn(g.player,
		Player{},
		Sprite{Kind: SpriteCircle, Radius: g.cfg.PlayerRadius, Color: playerColor},
	)
}

func (g *Game) setupMonsters() {
	w, h := g.arena.Width, g.arena.Height
	for x := 1; x <= g.cfg.Columns; x++ {
		for y := 1; y <= g.cfg.Rows; y++ {
			pos := physics.Vec{
				X: w / float64(g.cfg.Columns+1) / 2 * float64(x),
				Y: h/float64(g.cfg.Rows+1)*float64(y) + g.jitter(),
			}
			g.addMonster(pos, y-1, x-1)
			g.score.Get().MonsterCount++
		}
	}
}

// jitter is uniform in [-h/divisor, h/divisor).
func (g *Game) jitter() float64 {
	if g.cfg.JitterDivisor == 0 {
		return 0
	}
	span := g.arena.Height / g.cfg.JitterDivisor
	return g.rng.Float64()*2*span - span
}

func (g *Game) addMonster(pos physics.Vec, row, col int) {
	def := physics.NewBodyDef(physics.CategoryMonster)
	def.AffectedByGravity = false
	def.LinearDamping = g.cfg.MonsterDamping
	def.ContactTest = physics.CategoryBorder
	def.Collision = physics.CategoryMonster | physics.CategoryPlayer
	def.Precise = true

	body := g.world.AddCircle(def, g.cfg.MonsterRadius, pos)
	g.spawn(body,
		Monster{Row: row, Col: col},
		Sprite{Kind: SpriteCircle, Radius: g.cfg.MonsterRadius, Color: monsterColor},
	)
}

// HandlePan applies a Changed pan to the player. Screen y grows downward
// while world y grows upward, so the vertical component is subtracted.
func (g *Game) HandlePan(ev gesture.Event) {
	if ev.State != gesture.StateChanged || !g.ready {
		return
	}
	if g.player.Attached() {
		v := g.player.Velocity()
		v.X += ev.Velocity.X * g.cfg.VelocityScale
		v.Y -= ev.Velocity.Y * g.cfg.VelocityScale
		g.player.SetVelocity(v)
	}
	g.score.Get().Moves++
}

// DidBeginContact eliminates a monster that touched a border.
func (g *Game) DidBeginContact(c physics.Contact) {
	first, second := c.A, c.B
	if first.Category() >= second.Category() {
		first, second = second, first
	}

	if first.Category().Has(physics.CategoryMonster) && second.Category().Has(physics.CategoryBorder) {
		g.monsterDidHitBorder(first)
	}
}

func (g *Game) monsterDidHitBorder(monster *physics.Body) {
	if !g.world.Remove(monster) {
		return
	}
	if id, ok := monster.UserData.(ecs.EntityId); ok {
		g.commands.Delete(id)
	}

	score := g.score.Get()
	score.MonsterKilled++
	g.jukebox.Pop()

	if score.MonsterKilled == score.MonsterCount && !g.won {
		g.won = true
		g.presentGameOver(true)
	}
}

// presentGameOver hands GameOver to the presenter. Without a presenter it is
// retried by DidMove.
func (g *Game) presentGameOver(won bool) {
	if g.presenter == nil || g.over {
		return
	}
	g.over = true
	over := NewGameOver(g.arena, won, g.score.Get().Moves)
	over.RestartDelay = g.cfg.RestartDelay
	over.Transition = Flip(g.cfg.TransitionDuration)
	over.Next = func() Scene {
		return NewGame(g.cfg, g.jukebox, g.source)
	}
	g.presenter.Present(over, Flip(g.cfg.TransitionDuration))
}

// Update feeds pan events to HandlePan, steps the systems and applies the
// entity deletions queued by contacts.
func (g *Game) Update(dt float64) error {
	g.Setup()

	g.events = g.recognizer.Poll(g.events[:0], dt)
	for _, ev := range g.events {
		g.HandlePan(ev)
	}

	g.scheduler.Once(dt)
	g.commands.Flush(g.storage)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if !g.ready {
		return
	}
	drawSprites(screen, g.arena, g.Sprites(nil))
	drawHUD(screen, g.Score())
}

// DidMove builds the world on first presentation and starts the music. A game
// won before it had a presenter shows GameOver instead.
func (g *Game) DidMove(p Presenter) {
	g.presenter = p
	g.Setup()
	if g.won {
		g.presentGameOver(true)
		return
	}
	g.jukebox.StartMusic()
}

func (g *Game) WillMove() {
	g.recognizer.Cancel()
	g.jukebox.StopMusic()
}

// Score returns a copy of the counters.
func (g *Game) Score() Score {
	if !g.ready {
		return Score{}
	}
	return *g.score.Get()
}

// Won reports whether every monster has been eliminated.
func (g *Game) Won() bool {
	return g.won
}

func (g *Game) Arena() Arena { return g.arena }

func (g *Game) Storage() *ecs.Storage { return g.storage }

func (g *Game) World() *physics.World { return g.world }

// Player returns the player's body.
func (g *Game) Player() *physics.Body { return g.player }

// Stats snapshots the counters and scheduler timings.
func (g *Game) Stats() Stats {
	if !g.ready {
		return Stats{}
	}
	return Stats{
		Score:     g.Score(),
		Entities:  g.storage.Len(),
		Scheduler: g.scheduler.Stats(),
	}
}
