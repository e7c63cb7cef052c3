package app

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/chaos-rings/internal/config"
	"github.com/vovakirdan/chaos-rings/internal/sim"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type notePlayer struct {
	freqs []float64
}

func (p *notePlayer) PlayNote(freq float64) { p.freqs = append(p.freqs, freq) }

type resultSaver struct {
	results []GameResult
	err     error
}

func (s *resultSaver) SaveGameResult(data GameResult) error {
	s.results = append(s.results, data)
	return s.err
}

func newTestController(t *testing.T, cfg config.RingsConfig, opts Options) *Controller {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	c, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

// singleOpenRing has one ring whose gap covers the whole circle, so the
// first ball to reach it escapes.
func singleOpenRing() config.RingsConfig {
	cfg := config.DefaultRingsConfig()
	cfg.Rings.Count = 1
	cfg.Rings.BaseRadius = 20
	cfg.Rings.GapSize = 360
	return cfg
}

func runUntilSummary(t *testing.T, c *Controller, maxFrames int) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		c.Advance(16.67)
		if _, ok := c.Summary(); ok {
			return
		}
	}
	t.Fatalf("no game over after %d frames", maxFrames)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRingsConfig()
	cfg.Balls.Speed = 0
	if _, err := New(cfg, Options{}); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestZeroRingsGameOverAndRestart(t *testing.T) {
	cfg := config.DefaultRingsConfig()
	cfg.Rings.Count = 0
	saver := &resultSaver{}
	c := newTestController(t, cfg, Options{Saver: saver})

	c.Advance(16.67)
	summary, ok := c.Summary()
	if !ok {
		t.Fatal("Expected game over on the first frame")
	}
	if summary.Result.LeftScore != 0 || summary.Result.RightScore != 0 || summary.Winner != "" {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if len(saver.results) != 1 {
		t.Fatalf("Expected 1 saved result, got %d", len(saver.results))
	}
	if c.Games() != 1 {
		t.Errorf("Games() = %d, expected 1", c.Games())
	}

	// Summary stays for the delay
	c.Advance(500)
	if _, ok := c.Summary(); !ok {
		t.Error("Summary cleared before the delay elapsed")
	}

	c.Advance(500)
	if _, ok := c.Summary(); ok {
		t.Error("Summary should be cleared once the delay elapsed")
	}
	if c.Sim().GameOver() {
		t.Error("Expected a fresh game after the delay")
	}

	// The fresh game ends again on its first frame
	c.Advance(16.67)
	if c.Games() != 2 || len(saver.results) != 2 {
		t.Errorf("Expected a second finished game, games=%d saved=%d", c.Games(), len(saver.results))
	}
}

func TestPausedSummaryDoesNotExpire(t *testing.T) {
	cfg := config.DefaultRingsConfig()
	cfg.Rings.Count = 0
	c := newTestController(t, cfg, Options{})

	c.Advance(16.67)
	c.TogglePause()
	c.Advance(5000)
	if _, ok := c.Summary(); !ok {
		t.Error("Summary expired while paused")
	}

	c.TogglePause()
	c.Advance(1000)
	if _, ok := c.Summary(); ok {
		t.Error("Summary should expire after resuming")
	}
}

func TestEscapePlaysNoteAndScores(t *testing.T) {
	player := &notePlayer{}
	saver := &resultSaver{}
	seq := []sim.Note{{Key: 69, Velocity: 80, Frequency: 440}}
	c := newTestController(t, singleOpenRing(), Options{Player: player, Saver: saver, Notes: seq})

	runUntilSummary(t, c, 2000)

	if len(player.freqs) != 1 || player.freqs[0] != 440 {
		t.Errorf("Expected one 440Hz note, got %v", player.freqs)
	}

	if len(saver.results) != 1 {
		t.Fatalf("Expected 1 saved result, got %d", len(saver.results))
	}
	r := saver.results[0]
	if r.LeftScore+r.RightScore != 1 {
		t.Errorf("Expected exactly one point, got %d:%d", r.LeftScore, r.RightScore)
	}
	if r.RingCount != 1 || r.LeftLabel != "Yes" || r.RightLabel != "No" {
		t.Errorf("Unexpected result metadata: %+v", r)
	}

	summary, _ := c.Summary()
	if summary.Winner != "Yes" && summary.Winner != "No" {
		t.Errorf("Expected a winner, got %q", summary.Winner)
	}
}

func TestSaveErrorIsNotFatal(t *testing.T) {
	cfg := config.DefaultRingsConfig()
	cfg.Rings.Count = 0
	saver := &resultSaver{err: errors.New("disk full")}
	c := newTestController(t, cfg, Options{Saver: saver})

	c.Advance(16.67)
	if _, ok := c.Summary(); !ok {
		t.Error("Game over should still be shown when saving fails")
	}
}

func TestTimerExcludesPause(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestController(t, config.DefaultRingsConfig(), Options{Now: clock.Now})

	clock.Advance(10 * time.Second)
	if got := c.Elapsed(); got != 10*time.Second {
		t.Errorf("Elapsed() = %v, expected 10s", got)
	}

	c.TogglePause()
	clock.Advance(5 * time.Second)
	if got := c.Elapsed(); got != 10*time.Second {
		t.Errorf("Elapsed() while paused = %v, expected 10s", got)
	}

	c.TogglePause()
	clock.Advance(2 * time.Second)
	if got := c.Elapsed(); got != 12*time.Second {
		t.Errorf("Elapsed() after resume = %v, expected 12s", got)
	}
}

func TestTimerStopsAtGameOver(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cfg := config.DefaultRingsConfig()
	cfg.Rings.Count = 0
	c := newTestController(t, cfg, Options{Now: clock.Now})

	clock.Advance(3 * time.Second)
	c.Advance(16.67)
	clock.Advance(time.Minute)

	if got := c.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed() after game over = %v, expected 3s", got)
	}
}

func TestSetViewportFitsZoom(t *testing.T) {
	c := newTestController(t, config.DefaultRingsConfig(), Options{})

	// 100x50 cells at 8x16 units = 800x800 canvas
	c.SetViewport(100, 50)

	want := (400.0 - 50) / 470
	if got := c.Sim().Zoom(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Zoom() = %v, expected %v", got, want)
	}
}

func TestApplySettings(t *testing.T) {
	c := newTestController(t, config.DefaultRingsConfig(), Options{})
	c.SetViewport(100, 50)

	next := config.DefaultRingsConfig()
	next.Question = "Tabs or spaces?"
	next.Rings.Count = 3
	if err := c.ApplySettings(next); err != nil {
		t.Fatalf("ApplySettings() failed: %v", err)
	}

	if c.Config().Question != "Tabs or spaces?" {
		t.Errorf("Question not applied: %q", c.Config().Question)
	}
	if n := len(c.Sim().Rings()); n != 3 {
		t.Errorf("Expected 3 rings, got %d", n)
	}

	// New game is fitted to the existing viewport
	want := (400.0 - 50) / 110
	if got := c.Sim().Zoom(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Zoom() = %v, expected %v", got, want)
	}

	bad := next
	bad.Rings.GapSize = -5
	if err := c.ApplySettings(bad); err == nil {
		t.Error("ApplySettings() should reject an invalid config")
	}
	if c.Config().Rings.GapSize != next.Rings.GapSize {
		t.Error("Rejected settings must leave the current game untouched")
	}
}

func TestTogglePauseStopsTicks(t *testing.T) {
	c := newTestController(t, config.DefaultRingsConfig(), Options{})

	c.Advance(16.67)
	before := c.Sim().Ticks()

	c.TogglePause()
	if !c.Paused() {
		t.Fatal("Expected paused")
	}
	c.Advance(16.67)
	if c.Sim().Ticks() != before {
		t.Error("Paused controller advanced the simulation")
	}

	c.TogglePause()
	c.Advance(16.67)
	if c.Sim().Ticks() != before+1 {
		t.Errorf("Ticks() = %d, expected %d", c.Sim().Ticks(), before+1)
	}
}

func TestRestartKeepsNotes(t *testing.T) {
	player := &notePlayer{}
	seq := []sim.Note{{Key: 60, Frequency: 261.63}, {Key: 62, Frequency: 293.66}}
	c := newTestController(t, singleOpenRing(), Options{Player: player, Notes: seq})

	runUntilSummary(t, c, 2000)
	c.Restart()
	runUntilSummary(t, c, 2000)

	// The counter restarts with each game
	if len(player.freqs) != 2 || player.freqs[0] != 261.63 || player.freqs[1] != 261.63 {
		t.Errorf("Expected the first note twice, got %v", player.freqs)
	}
}
