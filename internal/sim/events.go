package sim

// Event is emitted by the simulation during a tick.
// Renderers, audio and history collaborators subscribe to these.
type Event interface {
	simEvent()
}

// RingDestroyedEvent is emitted when a ball exits through a ring's gap.
type RingDestroyedEvent struct {
	Side      Side
	RingIndex int
}

func (RingDestroyedEvent) simEvent() {}

// ScoreChangedEvent is emitted after a side's score increments.
type ScoreChangedEvent struct {
	Side  Side
	Score int
}

func (ScoreChangedEvent) simEvent() {}

// NoteEvent carries the next entry of the note sequence.
type NoteEvent struct {
	Note   Note
	Played int // Notes played in this game, including this one
}

func (NoteEvent) simEvent() {}

// ZoomChangedEvent is emitted whenever AdjustZoom sets a new factor.
type ZoomChangedEvent struct {
	Zoom float64
}

func (ZoomChangedEvent) simEvent() {}

// GameOverEvent is emitted once per game when no active ring remains.
type GameOverEvent struct {
	Scores Scores
}

func (GameOverEvent) simEvent() {}

// Listener receives simulation events synchronously from Tick.
type Listener func(Event)
