package sim

import "github.com/vovakirdan/chaos-rings/internal/core"

// Side identifies one of the two competing balls.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the lowercase side name used in logs and storage.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Ring is a circular boundary with a single angular gap.
type Ring struct {
	Radius   float64
	Active   bool
	GapAngle float64 // Gap center in degrees, [0, 360)
}

// Ball is one of the two bouncing balls.
type Ball struct {
	Pos       core.Vec2 // Relative to the ring center
	Vel       core.Vec2 // World units per 60fps frame
	Radius    float64
	Color     string
	Label     string
	Side      Side
	RingIndex int // Innermost ring the ball is considered to be inside
}

// Note is one entry of the externally supplied note sequence.
type Note struct {
	Key       uint8   // MIDI note number
	Velocity  uint8   // MIDI velocity
	Frequency float64 // Hz
}

// Scores holds the per-side point counts.
type Scores struct {
	Left  int
	Right int
}

// Get returns the score for a side.
func (s Scores) Get(side Side) int {
	if side == SideLeft {
		return s.Left
	}
	return s.Right
}

// Total returns the sum of both sides.
func (s Scores) Total() int {
	return s.Left + s.Right
}

func (s *Scores) inc(side Side) int {
	if side == SideLeft {
		s.Left++
		return s.Left
	}
	s.Right++
	return s.Right
}

// SideInfo is the label and color pair of one side.
type SideInfo struct {
	Label string
	Color string
}

// Config holds the parameters of one game. It is fixed for the lifetime of
// a game; changing it requires Initialize.
type Config struct {
	RingCount   int
	GapSize     float64 // Full gap width in degrees
	BallSpeed   float64 // Initial speed and floor reference, units per frame
	BaseRadius  float64 // Radius of ring 0
	RingSpacing float64 // Radius step between rings
	BallRadius  float64
	BallInset   float64 // Distance kept from ring 0 when placing balls
	GapSpin     float64 // Gap rotation in degrees per frame, 0 = fixed
	ZoomPadding float64 // Canvas units kept free around the outermost ring
	Left        SideInfo
	Right       SideInfo
}

// DefaultConfig returns the standard fifteen-ring setup.
func DefaultConfig() Config {
	return Config{
		RingCount:   15,
		GapSize:     8,
		BallSpeed:   3,
		BaseRadius:  50,
		RingSpacing: 30,
		BallRadius:  8,
		BallInset:   15,
		GapSpin:     0,
		ZoomPadding: 50,
		Left:        SideInfo{Label: "Yes", Color: "#00ff00"},
		Right:       SideInfo{Label: "No", Color: "#ff0000"},
	}
}
