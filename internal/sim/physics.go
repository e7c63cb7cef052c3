package sim

import (
	"github.com/vovakirdan/chaos-rings/internal/core"
)

// Physics constants.
const (
	FrameMs      = 16.67 // Delta that maps to dt = 1
	BounceDamp   = 0.98  // Velocity kept after a ring bounce
	EnergyBoost  = 1.02  // Velocity gain after a ball-ball collision
	MinSpeedFrac = 0.5   // Floor as a fraction of the configured ball speed

	// containEps absorbs rounding left by resolving a ball exactly onto a
	// ring boundary, so the containment scan sees it as inside.
	containEps = 1e-9
)

// InGap reports whether angleDeg lies within the gap arc centered at
// gapAngle with full width gapSize, wrapping across 0/360.
func InGap(angleDeg, gapAngle, gapSize float64) bool {
	start := gapAngle - gapSize/2
	end := gapAngle + gapSize/2

	switch {
	case start < 0:
		return angleDeg >= 360+start || angleDeg <= end
	case end > 360:
		return angleDeg >= start || angleDeg <= end-360
	default:
		return angleDeg >= start && angleDeg <= end
	}
}

// reflectOffRing resolves a ball that overlaps a ring from the inside:
// the ball is moved back onto the boundary along the outward normal,
// its velocity is mirrored about that normal and then damped.
func reflectOffRing(b *Ball, ringRadius float64) {
	dist := b.Pos.Len()
	n := core.V(1, 0)
	if dist > 0 {
		n = b.Pos.Scale(1 / dist)
	}

	overlap := dist + b.Radius - ringRadius
	b.Pos = b.Pos.Sub(n.Scale(overlap))

	dot := b.Vel.Dot(n)
	b.Vel = b.Vel.Sub(n.Scale(2 * dot)).Scale(BounceDamp)
}

// collideBalls resolves an overlap between two balls. It reports whether
// the balls were touching.
func collideBalls(a, b *Ball) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return false
	}

	// Coincident centers have no direction; push apart along +x.
	n := core.V(1, 0)
	if dist > 0 {
		n = delta.Scale(1 / dist)
	}

	half := (minDist - dist) * 0.5
	a.Pos = a.Pos.Sub(n.Scale(half))
	b.Pos = b.Pos.Add(n.Scale(half))

	// Equal masses: swap the normal components.
	v1n := a.Vel.Dot(n)
	v2n := b.Vel.Dot(n)
	a.Vel = a.Vel.Add(n.Scale(v2n - v1n)).Scale(EnergyBoost)
	b.Vel = b.Vel.Add(n.Scale(v1n - v2n)).Scale(EnergyBoost)
	return true
}
