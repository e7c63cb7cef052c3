// Package app owns one simulation and connects it to the clock, audio and
// result history. Front ends drive a Controller; they never touch the
// simulation's mutators directly.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chaos-rings/internal/config"
	"github.com/vovakirdan/chaos-rings/internal/core"
	"github.com/vovakirdan/chaos-rings/internal/sim"
)

// NotePlayer plays a note at the given frequency in Hz.
type NotePlayer interface {
	PlayNote(freq float64)
}

// GameResult contains data about a finished game.
type GameResult struct {
	Question   string
	LeftLabel  string
	RightLabel string
	LeftScore  int
	RightScore int
	RingCount  int
	Duration   time.Duration
}

// ResultSaver is an interface for persisting finished games.
type ResultSaver interface {
	SaveGameResult(data GameResult) error
}

// Summary is shown between game over and the automatic reset.
type Summary struct {
	Result GameResult
	Winner string // Empty on a draw
}

// Options configures a Controller. Zero values are valid.
type Options struct {
	Logger *log.Logger
	Player NotePlayer
	Saver  ResultSaver
	Notes  []sim.Note
	Seed   int64
	Now    func() time.Time
}

// Controller runs games back to back: it applies settings, forwards
// frame deltas, plays notes, records results and restarts after the
// game-over delay.
type Controller struct {
	cfg    config.RingsConfig
	sim    *sim.Simulation
	logger *log.Logger
	player NotePlayer
	saver  ResultSaver
	now    func() time.Time

	startTime time.Time
	pausedAt  time.Time

	summary *Summary
	overMs  float64
	games   int

	canvasW float64
	canvasH float64
}

// New validates cfg and starts the first game.
func New(cfg config.RingsConfig, opts Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:    cfg,
		logger: opts.Logger,
		player: opts.Player,
		saver:  opts.Saver,
		now:    opts.Now,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}

	c.sim = sim.New(cfg.Simulation(), opts.Seed)
	c.sim.Subscribe(c.onEvent)
	if len(opts.Notes) > 0 {
		c.sim.SetNotes(opts.Notes)
	}
	c.start()
	return c, nil
}

// start resets the clock and fits the first view.
func (c *Controller) start() {
	c.summary = nil
	c.overMs = 0
	c.startTime = c.now()
	c.pausedAt = c.startTime
	c.fitZoom()
	c.logger.Debug("game started",
		"rings", c.cfg.Rings.Count,
		"gap", c.cfg.Rings.GapSize,
		"speed", c.cfg.Balls.Speed,
	)
}

// ApplySettings validates cfg and starts a new game with it. An invalid
// config leaves the current game untouched.
func (c *Controller) ApplySettings(cfg config.RingsConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.sim.Initialize(cfg.Simulation())
	c.start()
	c.logger.Info("settings applied", "question", cfg.Question)
	return nil
}

// Restart starts a new game with the current settings.
func (c *Controller) Restart() {
	c.sim.Initialize(c.cfg.Simulation())
	c.start()
}

// TogglePause pauses or resumes the game. Paused time is excluded from
// the game timer.
func (c *Controller) TogglePause() {
	paused := !c.sim.Paused()
	c.sim.SetPaused(paused)

	now := c.now()
	if paused {
		c.pausedAt = now
	} else {
		c.startTime = c.startTime.Add(now.Sub(c.pausedAt))
	}
	c.logger.Debug("pause toggled", "paused", paused)
}

// Advance moves the game forward by deltaMs of frame time. After game
// over it counts down the summary delay and then restarts.
func (c *Controller) Advance(deltaMs float64) core.StepResult {
	if c.summary != nil {
		if !c.sim.Paused() {
			c.overMs += deltaMs
		}
		if c.overMs >= float64(c.cfg.Gameplay.GameOverDelayMs) {
			c.Restart()
		}
		return core.StepResult{State: c.sim.State()}
	}
	return c.sim.Tick(deltaMs)
}

// SetViewport sets the canvas from a terminal size in cells and refits
// the zoom to the outermost active ring.
func (c *Controller) SetViewport(cols, rows int) {
	c.canvasW = float64(cols) * c.cfg.View.CellWidth
	c.canvasH = float64(rows) * c.cfg.View.CellHeight
	c.fitZoom()
}

// fitZoom refits the zoom once a viewport is known.
func (c *Controller) fitZoom() {
	if c.canvasW <= 0 || c.canvasH <= 0 {
		return
	}
	c.sim.SetCanvas(c.canvasW, c.canvasH)
	c.sim.AdjustZoom()
}

// SetNotes replaces the note sequence and restarts it from the first note.
func (c *Controller) SetNotes(notes []sim.Note) {
	c.sim.SetNotes(notes)
	c.logger.Info("notes loaded", "count", len(notes))
}

// Elapsed returns game time without pauses. It stops at game over.
func (c *Controller) Elapsed() time.Duration {
	if c.summary != nil {
		return c.summary.Result.Duration
	}
	if c.sim.Paused() {
		return c.pausedAt.Sub(c.startTime)
	}
	return c.now().Sub(c.startTime)
}

// Summary returns the finished game while its summary is on screen.
func (c *Controller) Summary() (Summary, bool) {
	if c.summary == nil {
		return Summary{}, false
	}
	return *c.summary, true
}

// Sim exposes the simulation for read-only rendering.
func (c *Controller) Sim() *sim.Simulation {
	return c.sim
}

// Config returns the settings of the current game.
func (c *Controller) Config() config.RingsConfig {
	return c.cfg
}

// Paused reports whether the game is paused.
func (c *Controller) Paused() bool {
	return c.sim.Paused()
}

// Games returns how many games have finished.
func (c *Controller) Games() int {
	return c.games
}

func (c *Controller) onEvent(e sim.Event) {
	switch ev := e.(type) {
	case sim.RingDestroyedEvent:
		c.logger.Debug("ring destroyed", "side", ev.Side, "ring", ev.RingIndex)
	case sim.ScoreChangedEvent:
		c.logger.Debug("score changed", "side", ev.Side, "score", ev.Score)
	case sim.NoteEvent:
		if c.player != nil {
			c.player.PlayNote(ev.Note.Frequency)
		}
	case sim.ZoomChangedEvent:
		c.logger.Debug("zoom changed", "zoom", ev.Zoom)
	case sim.GameOverEvent:
		c.finish(ev.Scores)
	}
}

func (c *Controller) finish(scores sim.Scores) {
	result := GameResult{
		Question:   c.cfg.Question,
		LeftLabel:  c.cfg.Sides.Left.Label,
		RightLabel: c.cfg.Sides.Right.Label,
		LeftScore:  scores.Left,
		RightScore: scores.Right,
		RingCount:  c.cfg.Rings.Count,
		Duration:   c.Elapsed(),
	}

	winner := ""
	switch {
	case scores.Left > scores.Right:
		winner = result.LeftLabel
	case scores.Right > scores.Left:
		winner = result.RightLabel
	}

	c.summary = &Summary{Result: result, Winner: winner}
	c.overMs = 0
	c.games++

	c.logger.Info("game over",
		"left", result.LeftLabel,
		"left_score", scores.Left,
		"right", result.RightLabel,
		"right_score", scores.Right,
		"duration", result.Duration.Round(time.Second),
	)

	if c.saver != nil {
		if err := c.saver.SaveGameResult(result); err != nil {
			c.logger.Error("failed to save result", "error", err)
		}
	}
}
