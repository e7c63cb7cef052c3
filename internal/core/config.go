package core

// RuntimeConfig contains configuration passed by the platform at startup.
// The simulation uses Seed for deterministic ball velocities.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the frame clock (default 60)
	Seed     int64 // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is a summary of the simulation for the platform layer.
type GameState struct {
	LeftScore   int  // Points scored by the left ball
	RightScore  int  // Points scored by the right ball
	ActiveRings int  // Rings still standing
	GameOver    bool // Whether every ring has been destroyed
	Paused      bool // Whether the simulation is paused
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
}
