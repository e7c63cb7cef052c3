// Package sim implements the ring escape simulation: two balls bounce inside
// concentric rings and destroy a ring when they pass through its gap.
//
// The simulation is single-threaded and driven by an external frame clock
// through Tick. It has no rendering, audio or storage concerns; those
// collaborators subscribe to the events it emits.
package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/chaos-rings/internal/core"
)

// Simulation holds the rings, the two balls, the scoreboard and the zoom
// factor of one game.
type Simulation struct {
	cfg   Config
	rings []Ring
	balls [2]Ball

	scores      Scores
	zoom        float64
	notes       []Note
	notesPlayed int

	canvasW float64
	canvasH float64

	paused    bool
	gameOver  bool
	tickCount int

	rng       *rand.Rand
	listeners []Listener
}

// New creates a simulation seeded with seed and initializes it with cfg.
func New(cfg Config, seed int64) *Simulation {
	s := &Simulation{
		rng: rand.New(rand.NewSource(seed)),
	}
	s.Initialize(cfg)
	return s
}

// Subscribe registers a listener. Listeners survive Initialize.
func (s *Simulation) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Simulation) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

// Initialize replaces all game state: rings are rebuilt, balls are placed
// inside the innermost ring with random velocities, scores and the note
// counter go back to zero and zoom is reset to 1. The pause flag and the
// canvas size are kept.
func (s *Simulation) Initialize(cfg Config) {
	s.cfg = cfg
	s.scores = Scores{}
	s.notesPlayed = 0
	s.zoom = 1
	s.gameOver = false
	s.tickCount = 0

	count := max(0, cfg.RingCount)
	s.rings = make([]Ring, count)
	for i := range s.rings {
		s.rings[i] = Ring{
			Radius:   cfg.BaseRadius + float64(i)*cfg.RingSpacing,
			Active:   true,
			GapAngle: 0, // 3 o'clock
		}
	}

	innerRadius := cfg.BaseRadius
	if len(s.rings) > 0 {
		innerRadius = s.rings[0].Radius
	}
	offset := (innerRadius - cfg.BallInset) / 2

	s.balls[0] = s.newBall(core.V(offset, 0), SideLeft, cfg.Left)
	s.balls[1] = s.newBall(core.V(-offset, 0), SideRight, cfg.Right)
}

func (s *Simulation) newBall(pos core.Vec2, side Side, info SideInfo) Ball {
	return Ball{
		Pos: pos,
		Vel: core.V(
			s.cfg.BallSpeed*(s.rng.Float64()-0.5),
			s.cfg.BallSpeed*(s.rng.Float64()-0.5),
		),
		Radius:    s.cfg.BallRadius,
		Color:     info.Color,
		Label:     info.Label,
		Side:      side,
		RingIndex: 0,
	}
}

// Tick advances the simulation by deltaMs milliseconds of wall time.
// It does nothing while paused or after the game is over.
func (s *Simulation) Tick(deltaMs float64) core.StepResult {
	if s.paused || s.gameOver {
		return core.StepResult{State: s.State()}
	}

	// Checked before physics: the game ends on the tick after the last
	// ring falls, or on the first tick of a game without rings.
	if s.ActiveRings() == 0 {
		s.gameOver = true
		s.emit(GameOverEvent{Scores: s.scores})
		return core.StepResult{State: s.State()}
	}

	s.tickCount++
	dt := deltaMs / FrameMs

	if s.cfg.GapSpin != 0 {
		for i := range s.rings {
			if s.rings[i].Active {
				s.rings[i].GapAngle = core.NormalizeDeg(s.rings[i].GapAngle + s.cfg.GapSpin*dt)
			}
		}
	}

	for i := range s.balls {
		s.stepBall(&s.balls[i], dt)
	}

	collideBalls(&s.balls[0], &s.balls[1])

	floor := s.cfg.BallSpeed * MinSpeedFrac
	for i := range s.balls {
		b := &s.balls[i]
		if b.Vel.Len() < floor {
			b.Vel = core.FromAngle(s.rng.Float64()*2*math.Pi, s.cfg.BallSpeed)
		}
	}

	return core.StepResult{State: s.State()}
}

// stepBall integrates one ball and resolves its ring collision.
func (s *Simulation) stepBall(b *Ball, dt float64) {
	startIndex := b.RingIndex
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if i, ok := s.collisionRing(b); ok {
		ring := &s.rings[i]
		if InGap(b.Pos.AngleDeg(), ring.GapAngle, s.cfg.GapSize) {
			s.escape(b, i)
		} else {
			reflectOffRing(b, ring.Radius)
		}
	}

	// Containment bookkeeping overrides the index the collision scan set.
	// A ball is never moved back to an inner ring within a game.
	idx := startIndex
	if c, ok := s.containingRing(b); ok {
		idx = c
	}
	b.RingIndex = max(idx, startIndex)
}

// collisionRing returns the first active ring at or beyond the ball's
// current index whose radius the ball reaches.
func (s *Simulation) collisionRing(b *Ball) (int, bool) {
	dist := b.Pos.Len()
	for i := max(0, b.RingIndex); i < len(s.rings); i++ {
		if !s.rings[i].Active {
			continue
		}
		if dist+b.Radius >= s.rings[i].Radius {
			return i, true
		}
	}
	return 0, false
}

// containingRing returns the lowest-indexed active ring that fully
// contains the ball.
func (s *Simulation) containingRing(b *Ball) (int, bool) {
	dist := b.Pos.Len()
	for i := range s.rings {
		if s.rings[i].Active && dist <= s.rings[i].Radius-b.Radius+containEps {
			return i, true
		}
	}
	return 0, false
}

// escape destroys ring i on behalf of ball b.
func (s *Simulation) escape(b *Ball, i int) {
	if !s.rings[i].Active {
		return
	}
	s.rings[i].Active = false
	score := s.scores.inc(b.Side)
	b.RingIndex = min(i+1, len(s.rings)-1)

	s.emit(RingDestroyedEvent{Side: b.Side, RingIndex: i})
	s.emit(ScoreChangedEvent{Side: b.Side, Score: score})

	s.AdjustZoom()

	if len(s.notes) > 0 {
		note := s.notes[s.notesPlayed%len(s.notes)]
		s.notesPlayed++
		s.emit(NoteEvent{Note: note, Played: s.notesPlayed})
	}
}

// AdjustZoom fits the outermost active ring into the canvas, keeping the
// configured padding. Zoom is left unchanged when no ring is active.
func (s *Simulation) AdjustZoom() {
	outer := 0.0
	for i := len(s.rings) - 1; i >= 0; i-- {
		if s.rings[i].Active {
			outer = s.rings[i].Radius
			break
		}
	}
	if outer <= 0 {
		return
	}

	s.zoom = (math.Min(s.canvasW, s.canvasH)/2 - s.cfg.ZoomPadding) / outer
	s.emit(ZoomChangedEvent{Zoom: s.zoom})
}

// SetCanvas updates the canvas size used by AdjustZoom. It does not
// change the current zoom.
func (s *Simulation) SetCanvas(width, height float64) {
	s.canvasW = width
	s.canvasH = height
}

// SetNotes replaces the note sequence and restarts it from the beginning.
func (s *Simulation) SetNotes(notes []Note) {
	s.notes = append([]Note(nil), notes...)
	s.notesPlayed = 0
}

// SetPaused pauses or resumes ticking.
func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether ticking is suspended.
func (s *Simulation) Paused() bool {
	return s.paused
}

// GameOver reports whether the game-over event has fired for this game.
func (s *Simulation) GameOver() bool {
	return s.gameOver
}

// Config returns the configuration of the current game.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Rings returns a copy of the ring list, innermost first.
func (s *Simulation) Rings() []Ring {
	return append([]Ring(nil), s.rings...)
}

// Balls returns a copy of both balls, left side first.
func (s *Simulation) Balls() [2]Ball {
	return s.balls
}

// Scores returns the current scoreboard.
func (s *Simulation) Scores() Scores {
	return s.scores
}

// Zoom returns the current zoom factor.
func (s *Simulation) Zoom() float64 {
	return s.zoom
}

// NotesPlayed returns how many notes have been emitted in this game.
func (s *Simulation) NotesPlayed() int {
	return s.notesPlayed
}

// Ticks returns the number of physics ticks run in this game.
func (s *Simulation) Ticks() int {
	return s.tickCount
}

// ActiveRings counts rings that have not been destroyed.
func (s *Simulation) ActiveRings() int {
	n := 0
	for _, r := range s.rings {
		if r.Active {
			n++
		}
	}
	return n
}

// State returns a platform-level summary of the simulation.
func (s *Simulation) State() core.GameState {
	return core.GameState{
		LeftScore:   s.scores.Left,
		RightScore:  s.scores.Right,
		ActiveRings: s.ActiveRings(),
		GameOver:    s.gameOver,
		Paused:      s.paused,
	}
}
